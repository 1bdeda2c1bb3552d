package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/open-helpdesk/helpdesk-service/internal/domain"
)

// CommentRepository encapsulates comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository instantiates repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (ticket_id, author_id, body, attachment)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.AuthorID,
		comment.Body,
		comment.Attachment,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	const query = `
        SELECT m.id, m.ticket_id, m.author_id, m.body, m.attachment, m.created_at, u.name, u.email
        FROM comments m
        JOIN accounts u ON u.id = m.author_id
        WHERE m.ticket_id=$1
        ORDER BY m.created_at`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var (
			comment     domain.Comment
			authorName  string
			authorEmail string
		)
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.AuthorID,
			&comment.Body,
			&comment.Attachment,
			&comment.CreatedAt,
			&authorName,
			&authorEmail,
		); err != nil {
			return nil, err
		}
		comment.Author = &domain.AccountRef{ID: comment.AuthorID, Name: authorName, Email: authorEmail}
		result = append(result, comment)
	}
	return result, rows.Err()
}
