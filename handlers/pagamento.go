package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pagamento-svc/kafka"
	"pagamento-svc/middleware"
	"pagamento-svc/models"
	"pagamento-svc/service"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type PagamentoHandler struct {
	service  *service.PagamentoService
	producer sarama.SyncProducer
	logger   *zap.Logger
}

// NewPagamentoHandler wires the HTTP boundary. producer may be nil; event
// publishing is then skipped.
func NewPagamentoHandler(svc *service.PagamentoService, producer sarama.SyncProducer, logger *zap.Logger) *PagamentoHandler {
	return &PagamentoHandler{
		service:  svc,
		producer: producer,
		logger:   logger,
	}
}

func (h *PagamentoHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/pagamentos", h.GetPagamentos)
	router.GET("/pagamentos/:id", h.GetPagamento)
	router.POST("/pagamentos", h.CreatePagamento)
	router.PUT("/pagamentos/:id", h.UpdatePagamento)
	router.DELETE("/pagamentos/:id", h.DeletePagamento)
}

func (h *PagamentoHandler) GetPagamentos(c *gin.Context) {
	ctx, span := otel.Tracer("pagamento-service").Start(c.Request.Context(), "GetPagamentos")
	defer span.End()

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size parameter"})
		return
	}

	result, err := h.service.FindAll(ctx, page, size)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to list pagamentos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	span.SetAttributes(attribute.Int("pagamentos.count", len(result.Content)))
	c.JSON(http.StatusOK, result)
}

func (h *PagamentoHandler) GetPagamento(c *gin.Context) {
	ctx, span := otel.Tracer("pagamento-service").Start(c.Request.Context(), "GetPagamento")
	defer span.End()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	span.SetAttributes(attribute.Int64("pagamento.id", id))

	dto, err := h.service.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pagamento not found"})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to fetch pagamento", zap.Int64("pagamento_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto)
}

func (h *PagamentoHandler) CreatePagamento(c *gin.Context) {
	ctx, span := otel.Tracer("pagamento-service").Start(c.Request.Context(), "CreatePagamento")
	defer span.End()

	var dto models.PagamentoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Insert(ctx, dto)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to create pagamento", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	span.SetAttributes(attribute.Int64("pagamento.id", created.ID))
	middleware.RecordPagamentoOperation("created")

	if h.producer != nil {
		event := models.PagamentoEvent{
			PagamentoID:        created.ID,
			PedidoID:           created.PedidoID,
			FormaDePagamentoID: created.FormaDePagamentoID,
			Valor:              created.Valor,
			Status:             created.Status,
			EventType:          "pagamento_criado",
		}
		if err := kafka.PublishPagamentoEvent(ctx, h.producer, kafka.TopicPagamentoEvents, event, h.logger); err != nil {
			h.logger.Error("Failed to publish pagamento event", zap.Error(err))
		}
	}

	c.Header("Location", fmt.Sprintf("/pagamentos/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *PagamentoHandler) UpdatePagamento(c *gin.Context) {
	ctx, span := otel.Tracer("pagamento-service").Start(c.Request.Context(), "UpdatePagamento")
	defer span.End()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	span.SetAttributes(attribute.Int64("pagamento.id", id))

	var dto models.PagamentoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(ctx, id, dto)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pagamento not found"})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to update pagamento", zap.Int64("pagamento_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	middleware.RecordPagamentoOperation("updated")
	c.JSON(http.StatusOK, updated)
}

func (h *PagamentoHandler) DeletePagamento(c *gin.Context) {
	ctx, span := otel.Tracer("pagamento-service").Start(c.Request.Context(), "DeletePagamento")
	defer span.End()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	span.SetAttributes(attribute.Int64("pagamento.id", id))

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrInvalidArgument) || errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pagamento not found"})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to delete pagamento", zap.Int64("pagamento_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	middleware.RecordPagamentoOperation("deleted")

	if h.producer != nil {
		event := models.PagamentoEvent{
			PagamentoID: id,
			EventType:   "pagamento_excluido",
		}
		if err := kafka.PublishPagamentoEvent(ctx, h.producer, kafka.TopicPagamentoEvents, event, h.logger); err != nil {
			h.logger.Error("Failed to publish pagamento event", zap.Error(err))
		}
	}

	c.Status(http.StatusNoContent)
}
