package controller

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type KnowledgeController struct {
	KnowledgeService *service.KnowledgeService
}

func NewKnowledgeController(knowledgeService *service.KnowledgeService) *KnowledgeController {
	return &KnowledgeController{KnowledgeService: knowledgeService}
}

// List godoc
// @Summary Paginated knowledge documents
// @Tags knowledge
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/knowledge [get]
func (c *KnowledgeController) List(ctx *gin.Context) {
	page := queryInt(ctx, "page", 1)
	limit := queryInt(ctx, "limit", 20)

	docs, total, err := c.KnowledgeService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: docs, Total: total, Page: page, Limit: limit})
}

// Search godoc
// @Summary Search knowledge documents
// @Tags knowledge
// @Produce json
// @Security ApiKeyAuth
// @Param q query string true "search text"
// @Param type query string false "document type filter"
// @Success 200 {object} util.Response{data=[]model.KnowledgeDocument}
// @Router /api/knowledge/search [get]
func (c *KnowledgeController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "q is required")
		return
	}

	docs, err := c.KnowledgeService.Search(query, ctx.Query("type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, docs)
}

// Get godoc
// @Summary Knowledge document by id
// @Tags knowledge
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "document id"
// @Success 200 {object} util.Response{data=model.KnowledgeDocument}
// @Failure 404 {object} util.Response
// @Router /api/knowledge/{id} [get]
func (c *KnowledgeController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid document id")
		return
	}

	doc, err := c.KnowledgeService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrDocumentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, doc)
}

// Create godoc
// @Summary Create a knowledge document (admin)
// @Tags knowledge
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.KnowledgeDocument true "document"
// @Success 201 {object} util.Response{data=model.KnowledgeDocument}
// @Router /api/admin/knowledge [post]
func (c *KnowledgeController) Create(ctx *gin.Context) {
	var doc model.KnowledgeDocument
	if err := ctx.ShouldBindJSON(&doc); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if doc.Title == "" || doc.Content == "" {
		util.BadRequest(ctx, "title and content are required")
		return
	}

	if err := c.KnowledgeService.Create(&doc); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, doc)
}

// Update godoc
// @Summary Update a knowledge document (admin)
// @Tags knowledge
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "document id"
// @Param body body model.KnowledgeDocument true "document"
// @Success 200 {object} util.Response{data=model.KnowledgeDocument}
// @Router /api/admin/knowledge/{id} [put]
func (c *KnowledgeController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid document id")
		return
	}

	var doc model.KnowledgeDocument
	if err := ctx.ShouldBindJSON(&doc); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.KnowledgeService.Update(id, &doc)
	if err != nil {
		if errors.Is(err, util.ErrDocumentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, updated)
}

// Delete godoc
// @Summary Delete a knowledge document (admin)
// @Tags knowledge
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "document id"
// @Success 200 {object} util.Response
// @Router /api/admin/knowledge/{id} [delete]
func (c *KnowledgeController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid document id")
		return
	}

	if err := c.KnowledgeService.Delete(id); err != nil {
		if errors.Is(err, util.ErrDocumentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
