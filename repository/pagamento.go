package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pagamento-svc/models"
)

const pagamentoColumns = "id, valor, nome, numero_do_cartao, validade_do_cartao, codigo_de_seguranca, status, pedido_id, forma_de_pagamento_id, created_at, updated_at"

// PagamentoRepository is a thin gateway over the pagamentos table. It has no
// domain logic; callers decide what absence or failure means.
type PagamentoRepository struct {
	db *sql.DB
}

func NewPagamentoRepository(db *sql.DB) *PagamentoRepository {
	return &PagamentoRepository{db: db}
}

// FindByID returns nil without an error when no row matches.
func (r *PagamentoRepository) FindByID(ctx context.Context, id int64) (*models.Pagamento, error) {
	var p models.Pagamento
	err := r.db.QueryRowContext(ctx,
		"SELECT "+pagamentoColumns+" FROM pagamentos WHERE id = $1",
		id,
	).Scan(&p.ID, &p.Valor, &p.Nome, &p.NumeroDoCartao, &p.ValidadeDoCartao,
		&p.CodigoDeSeguranca, &p.Status, &p.PedidoID, &p.FormaDePagamentoID,
		&p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pagamento %d: %w", id, err)
	}
	return &p, nil
}

// FindAll returns one page of rows ordered by id, plus the total row count.
func (r *PagamentoRepository) FindAll(ctx context.Context, page, size int) ([]models.Pagamento, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pagamentos").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pagamentos: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+pagamentoColumns+" FROM pagamentos ORDER BY id LIMIT $1 OFFSET $2",
		size, page*size,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pagamentos: %w", err)
	}
	defer rows.Close()

	var pagamentos []models.Pagamento
	for rows.Next() {
		var p models.Pagamento
		if err := rows.Scan(&p.ID, &p.Valor, &p.Nome, &p.NumeroDoCartao, &p.ValidadeDoCartao,
			&p.CodigoDeSeguranca, &p.Status, &p.PedidoID, &p.FormaDePagamentoID,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan pagamento: %w", err)
		}
		pagamentos = append(pagamentos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate pagamentos: %w", err)
	}

	return pagamentos, total, nil
}

// Save inserts when the entity has no identifier yet, updates otherwise.
// The stored row is written back into p, including the generated id.
func (r *PagamentoRepository) Save(ctx context.Context, p *models.Pagamento) error {
	if p.ID == 0 {
		err := r.db.QueryRowContext(ctx,
			`INSERT INTO pagamentos (valor, nome, numero_do_cartao, validade_do_cartao, codigo_de_seguranca, status, pedido_id, forma_de_pagamento_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING `+pagamentoColumns,
			p.Valor, p.Nome, p.NumeroDoCartao, p.ValidadeDoCartao, p.CodigoDeSeguranca,
			p.Status, p.PedidoID, p.FormaDePagamentoID,
		).Scan(&p.ID, &p.Valor, &p.Nome, &p.NumeroDoCartao, &p.ValidadeDoCartao,
			&p.CodigoDeSeguranca, &p.Status, &p.PedidoID, &p.FormaDePagamentoID,
			&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert pagamento: %w", err)
		}
		return nil
	}

	err := r.db.QueryRowContext(ctx,
		`UPDATE pagamentos
		 SET valor = $1, nome = $2, numero_do_cartao = $3, validade_do_cartao = $4,
		     codigo_de_seguranca = $5, status = $6, pedido_id = $7, forma_de_pagamento_id = $8,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9
		 RETURNING `+pagamentoColumns,
		p.Valor, p.Nome, p.NumeroDoCartao, p.ValidadeDoCartao, p.CodigoDeSeguranca,
		p.Status, p.PedidoID, p.FormaDePagamentoID, p.ID,
	).Scan(&p.ID, &p.Valor, &p.Nome, &p.NumeroDoCartao, &p.ValidadeDoCartao,
		&p.CodigoDeSeguranca, &p.Status, &p.PedidoID, &p.FormaDePagamentoID,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update pagamento %d: %w", p.ID, err)
	}
	return nil
}

func (r *PagamentoRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM pagamentos WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete pagamento %d: %w", id, err)
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PagamentoRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM pagamentos WHERE id = $1)", id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pagamento %d: %w", id, err)
	}
	return exists, nil
}
