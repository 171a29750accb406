package httpapi

import (
	"net/http"

	"myshop-be/internal/admin"
	"myshop-be/internal/catalog"
	"myshop-be/internal/order"
	"myshop-be/internal/product"

	"github.com/gin-gonic/gin"
)

type statusReq struct {
	Status string `json:"status"`
}

func (s *Server) adminListOrders(c *gin.Context) {
	buckets, err := s.Admin.ListOrdersGroupedByStatus(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": admin.ToBucketResponses(buckets)})
}

func (s *Server) adminGetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	o, err := s.Admin.GetOrder(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order.ToResponse(o))
}

func (s *Server) adminSetOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req statusReq
	if !bindJSON(c, &req) {
		return
	}
	if err := s.Admin.SetOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (s *Server) adminListProducts(c *gin.Context) {
	list, err := s.Admin.ListProducts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]catalog.ProductResponse, 0, len(list))
	for i := range list {
		out = append(out, catalog.ToProductResponse(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

func (s *Server) adminCreateProduct(c *gin.Context) {
	var in product.Input
	if !bindJSON(c, &in) {
		return
	}
	p, err := s.Admin.CreateProduct(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalog.ToProductResponse(p))
}

func (s *Server) adminUpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in product.Input
	if !bindJSON(c, &in) {
		return
	}
	p, err := s.Admin.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog.ToProductResponse(p))
}

func (s *Server) adminDeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.Admin.DeleteProduct(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
