package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initProjectRoutes(api *gin.RouterGroup) {
	projects := api.Group("/projects")

	projects.POST("", h.funeralHomeIdentityMiddleware, h.createProject)
	projects.GET("", h.funeralHomeIdentityMiddleware, h.listProjects)
	projects.GET("/:slug", h.getProjectBySlug)
}

type createProjectRequest struct {
	DeceasedName string `json:"deceased_name" binding:"required"`
	Slug         string `json:"slug" binding:"required,min=3,max=64"`
}

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	homeID, err := h.getFuneralHomeUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	project, err := h.services.Projects.Create(c.Request.Context(), homeID, req.DeceasedName, req.Slug)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

func (h *Handler) listProjects(c *gin.Context) {
	homeID, err := h.getFuneralHomeUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	projects, err := h.services.Projects.GetAllByFuneralHome(c.Request.Context(), homeID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// getProjectBySlug serves the public memorial page data: the project plus
// its recorded kenpai.
func (h *Handler) getProjectBySlug(c *gin.Context) {
	project, records, err := h.services.Projects.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project, "kenpai": records})
}
