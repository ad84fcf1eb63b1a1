package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lojinha/catalog-api/internal/api/metrics"
	"github.com/lojinha/catalog-api/internal/core/domain"
	"github.com/lojinha/catalog-api/internal/core/ports"
)

// ProductHandler serves the /api/produtos routes.
type ProductHandler struct {
	service ports.CatalogService
}

func NewProductHandler(service ports.CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/produtos.
//
// @Summary      List all products
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   productResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/produtos [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, messageResponse{
			Message: "Erro ao recuperar produtos - " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Get handles GET /api/produtos/:id. A found product is returned as a
// singleton list, preserving the legacy response shape.
//
// @Summary      Get a product by id
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {array}   productResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/produtos/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Produto não encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{
			Message: "Erro ao recuperar o produto - " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, toProductResponses([]domain.Product{*product}))
}

// Create handles POST /api/produtos.
//
// @Summary      Create a product
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details, id included"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/produtos [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		ID:          req.ID,
		Description: req.Description,
		Price:       req.Price,
		Brand:       req.Brand,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductExists) {
			return c.JSON(http.StatusConflict, messageResponse{
				Message: fmt.Sprintf("Produto %d já existe", req.ID),
			})
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{
			Message: "Erro ao incluir o produto - " + err.Error(),
		})
	}

	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Produto %d incluso com sucesso", req.ID),
	})
}

// Update handles PUT /api/produtos/:id. All three mutable columns are
// replaced wholesale; fields missing from the body become NULL.
//
// @Summary      Update a product
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Product id"
// @Param        body  body      updateProductRequest  true  "Replacement field values"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/produtos/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.service.UpdateProduct(c.Request().Context(), id, ports.UpdateProductInput{
		Description: req.Description,
		Price:       req.Price,
		Brand:       req.Brand,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Produto não encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{
			Message: "Erro ao atualizar o registro - " + err.Error(),
		})
	}

	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Registro alterado com sucesso"})
}

// Delete handles DELETE /api/produtos/:id. Deleting an absent id is a no-op
// reported as 404.
//
// @Summary      Delete a product
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/produtos/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Produto não encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{
			Message: "Erro ao excluir o produto - " + err.Error(),
		})
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Produto excluído com sucesso"})
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id inválido")
	}
	return id, nil
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = productResponse{
			ID:          p.ID,
			Description: p.Description,
			Price:       p.Price,
			Brand:       p.Brand,
		}
	}
	return out
}
