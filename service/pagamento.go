package service

import (
	"context"
	"errors"
	"fmt"

	"pagamento-svc/models"

	"go.uber.org/zap"
)

var (
	// ErrNotFound means the requested pagamento does not exist.
	ErrNotFound = errors.New("pagamento not found")
	// ErrInvalidArgument means the operation targeted an id that does not
	// exist in the system (delete against an absent row).
	ErrInvalidArgument = errors.New("pagamento does not exist in the system")
)

// Repository is the persistence contract the service depends on.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.Pagamento, error)
	FindAll(ctx context.Context, page, size int) ([]models.Pagamento, int64, error)
	Save(ctx context.Context, p *models.Pagamento) error
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type PagamentoService struct {
	repo   Repository
	logger *zap.Logger
}

func NewPagamentoService(repo Repository, logger *zap.Logger) *PagamentoService {
	return &PagamentoService{repo: repo, logger: logger}
}

// FindAll returns one page of pagamentos plus total-count metadata.
func (s *PagamentoService) FindAll(ctx context.Context, page, size int) (models.Page, error) {
	pagamentos, total, err := s.repo.FindAll(ctx, page, size)
	if err != nil {
		return models.Page{}, err
	}

	content := make([]models.PagamentoDTO, 0, len(pagamentos))
	for _, p := range pagamentos {
		content = append(content, models.NewPagamentoDTO(p))
	}

	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	return models.Page{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (s *PagamentoService) FindByID(ctx context.Context, id int64) (models.PagamentoDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.PagamentoDTO{}, err
	}
	if p == nil {
		return models.PagamentoDTO{}, ErrNotFound
	}
	return models.NewPagamentoDTO(*p), nil
}

// Insert persists a new pagamento. Whatever status the client supplied is
// discarded; every new pagamento starts as CRIADO.
func (s *PagamentoService) Insert(ctx context.Context, dto models.PagamentoDTO) (models.PagamentoDTO, error) {
	var entity models.Pagamento
	copyDTOToEntity(dto, &entity)
	entity.ID = 0
	entity.Status = models.StatusCriado

	if err := s.repo.Save(ctx, &entity); err != nil {
		return models.PagamentoDTO{}, fmt.Errorf("failed to insert pagamento: %w", err)
	}

	s.logger.Info("Pagamento created", zap.Int64("pagamento_id", entity.ID))
	return models.NewPagamentoDTO(entity), nil
}

// Update applies the DTO fields onto an existing pagamento. Unlike Insert,
// status is applied as sent; it is an unconstrained label.
func (s *PagamentoService) Update(ctx context.Context, id int64, dto models.PagamentoDTO) (models.PagamentoDTO, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.PagamentoDTO{}, err
	}
	if entity == nil {
		return models.PagamentoDTO{}, ErrNotFound
	}

	copyDTOToEntity(dto, entity)
	if dto.Status != "" {
		entity.Status = dto.Status
	}

	if err := s.repo.Save(ctx, entity); err != nil {
		return models.PagamentoDTO{}, fmt.Errorf("failed to update pagamento %d: %w", id, err)
	}

	s.logger.Info("Pagamento updated", zap.Int64("pagamento_id", id))
	return models.NewPagamentoDTO(*entity), nil
}

func (s *PagamentoService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInvalidArgument
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete pagamento %d: %w", id, err)
	}

	s.logger.Info("Pagamento deleted", zap.Int64("pagamento_id", id))
	return nil
}

// copyDTOToEntity copies every client-settable field. Status and id are
// handled by the callers.
func copyDTOToEntity(dto models.PagamentoDTO, entity *models.Pagamento) {
	entity.Valor = dto.Valor
	entity.Nome = dto.Nome
	entity.NumeroDoCartao = dto.NumeroDoCartao
	entity.ValidadeDoCartao = dto.ValidadeDoCartao
	entity.CodigoDeSeguranca = dto.CodigoDeSeguranca
	entity.PedidoID = dto.PedidoID
	entity.FormaDePagamentoID = dto.FormaDePagamentoID
}
