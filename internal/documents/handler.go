package documents

import (
	"errors"
	"net/http"

	"docstore-api/internal/auth"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	Service     Service
	AuthService auth.Service
	Notifier    Notifier
}

// Create godoc
// @Summary Create a new document
// @Description Create a new document owned by the authenticated user
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDocumentRequest true "Document data"
// @Success 201 {object} Document
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userId, err := h.AuthService.GetUserIDFromGinContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.Service.Create(c.Request.Context(), req, userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document"})
		return
	}

	h.notify(userId, "created", doc.ID)
	c.JSON(http.StatusCreated, doc)
}

// GetAll godoc
// @Summary List the user's documents
// @Description List every document owned by the authenticated user
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{documents=[]Document}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /documents [get]
func (h *DocumentHandler) GetAll(c *gin.Context) {
	userId, err := h.AuthService.GetUserIDFromGinContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	docs, err := h.Service.FindAll(c.Request.Context(), userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	if docs == nil {
		docs = []Document{}
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// GetByID godoc
// @Summary Get a document by id
// @Description Get a single document; returns 404 when it does not exist or is owned by someone else
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} Document
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	userId, err := h.AuthService.GetUserIDFromGinContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.Service.FindOne(c.Request.Context(), c.Param("id"), userId)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get document"})
		}
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Update godoc
// @Summary Update a document
// @Description Apply a partial update to a document the user owns; absent fields are left untouched
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param request body UpdateDocumentRequest true "Fields to change"
// @Success 200 {object} Document
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /documents/{id} [patch]
func (h *DocumentHandler) Update(c *gin.Context) {
	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userId, err := h.AuthService.GetUserIDFromGinContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.Service.Update(c.Request.Context(), c.Param("id"), req, userId)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		}
		return
	}

	h.notify(userId, "updated", doc.ID)
	c.JSON(http.StatusOK, doc)
}

// Delete godoc
// @Summary Delete a document
// @Description Delete a document the user owns
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	userId, err := h.AuthService.GetUserIDFromGinContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id, userId); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		}
		return
	}

	h.notify(userId, "deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

func (h *DocumentHandler) notify(userId int, action, documentId string) {
	if h.Notifier != nil {
		h.Notifier.DocumentChanged(userId, action, documentId)
	}
}
