package models

import "time"

type Status string

const (
	StatusCriado     Status = "CRIADO"
	StatusConfirmado Status = "CONFIRMADO"
	StatusCancelado  Status = "CANCELADO"
)

// Pagamento is the persisted payment record. Nome and the card fields are
// nullable in the database, hence the pointer types.
type Pagamento struct {
	ID                 int64     `json:"id"`
	Valor              float64   `json:"valor"`
	Nome               *string   `json:"nome"`
	NumeroDoCartao     *string   `json:"numeroDoCartao"`
	ValidadeDoCartao   *string   `json:"validadeDoCartao"`
	CodigoDeSeguranca  *string   `json:"codigoDeSeguranca"`
	Status             Status    `json:"status"`
	PedidoID           int64     `json:"pedidoId"`
	FormaDePagamentoID int64     `json:"formaDePagamentoId"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PagamentoDTO is the request/response body shape. ID and status are
// server-controlled on create; clients may still send them, they are ignored.
type PagamentoDTO struct {
	ID                 int64   `json:"id,omitempty"`
	Valor              float64 `json:"valor" binding:"required"`
	Nome               *string `json:"nome"`
	NumeroDoCartao     *string `json:"numeroDoCartao,omitempty"`
	ValidadeDoCartao   *string `json:"validadeDoCartao,omitempty"`
	CodigoDeSeguranca  *string `json:"codigoDeSeguranca,omitempty"`
	Status             Status  `json:"status,omitempty"`
	PedidoID           int64   `json:"pedidoId" binding:"required"`
	FormaDePagamentoID int64   `json:"formaDePagamentoId" binding:"required"`
}

// NewPagamentoDTO projects an entity into its boundary shape.
func NewPagamentoDTO(p Pagamento) PagamentoDTO {
	return PagamentoDTO{
		ID:                 p.ID,
		Valor:              p.Valor,
		Nome:               p.Nome,
		NumeroDoCartao:     p.NumeroDoCartao,
		ValidadeDoCartao:   p.ValidadeDoCartao,
		CodigoDeSeguranca:  p.CodigoDeSeguranca,
		Status:             p.Status,
		PedidoID:           p.PedidoID,
		FormaDePagamentoID: p.FormaDePagamentoID,
	}
}

// Page is the paginated list envelope.
type Page struct {
	Content       []PagamentoDTO `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

type PagamentoEvent struct {
	PagamentoID        int64   `json:"pagamento_id"`
	PedidoID           int64   `json:"pedido_id"`
	FormaDePagamentoID int64   `json:"forma_de_pagamento_id"`
	Valor              float64 `json:"valor"`
	Status             Status  `json:"status"`
	EventType          string  `json:"event_type"` // pagamento_criado, pagamento_excluido
}
