package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/application/blog/dto"
	"remotcyberhelp/internal/application/blog/usecases"
	appcommon "remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/domain/blog"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/utils"
)

type listPostsUseCase interface {
	Execute(ctx context.Context, q usecases.ListPostsQuery) (*appcommon.Page[*dto.PostDTO], error)
}

type getPostUseCase interface {
	BySlug(ctx context.Context, slug string, includeDrafts bool) (*dto.PostDTO, error)
	ByID(ctx context.Context, postID string) (*dto.PostDTO, error)
}

type listCategoriesUseCase interface {
	Execute(ctx context.Context) ([]blog.CategoryCount, error)
}

type createPostUseCase interface {
	Execute(ctx context.Context, cmd usecases.PostCommand) (*dto.PostDTO, error)
}

type updatePostUseCase interface {
	Execute(ctx context.Context, postID string, cmd usecases.PostCommand) (*dto.PostDTO, error)
}

type deletePostUseCase interface {
	Execute(ctx context.Context, postID string) error
}

type PostRequest struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Excerpt    string   `json:"excerpt" validate:"omitempty,max=500"`
	Content    string   `json:"content" validate:"required"`
	Category   string   `json:"category" validate:"omitempty,max=100"`
	Tags       []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Author     string   `json:"author" validate:"omitempty,max=100"`
	CoverImage string   `json:"coverImage" validate:"omitempty,url"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft published"`
}

func (r *PostRequest) toCommand() usecases.PostCommand {
	return usecases.PostCommand{
		Title:      r.Title,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		Category:   r.Category,
		Tags:       r.Tags,
		Author:     r.Author,
		CoverImage: r.CoverImage,
		Status:     r.Status,
	}
}

type BlogUseCases struct {
	List       listPostsUseCase
	Get        getPostUseCase
	Categories listCategoriesUseCase
	Create     createPostUseCase
	Update     updatePostUseCase
	Delete     deletePostUseCase
}

type BlogHandler struct {
	uc BlogUseCases
}

func NewBlogHandler(uc BlogUseCases) *BlogHandler {
	return &BlogHandler{uc: uc}
}

func listPostsQuery(c *gin.Context, publishedOnly bool) usecases.ListPostsQuery {
	p := utils.ParsePagination(c)
	return usecases.ListPostsQuery{
		Page:          p.Page,
		PageSize:      p.Limit,
		SortBy:        c.Query("sortBy"),
		SortOrder:     c.Query("sortOrder"),
		Status:        c.Query("status"),
		Category:      c.Query("category"),
		Tag:           c.Query("tag"),
		Search:        c.Query("search"),
		PublishedOnly: publishedOnly,
	}
}

// ListPublished godoc
// @Summary      List published blog posts
// @Tags         blog
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        category query string false "Category"
// @Param        tag query string false "Tag"
// @Param        search query string false "Free text"
// @Success      200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router       /blog [get]
func (h *BlogHandler) ListPublished(c *gin.Context) {
	page, err := h.uc.List.Execute(c.Request.Context(), listPostsQuery(c, true))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	common.RespondPage(c, page)
}

// GetBySlug handles GET /blog/:slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.uc.Get.BySlug(c.Request.Context(), c.Param("slug"), false)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", post)
}

// Categories handles GET /blog/categories
func (h *BlogHandler) Categories(c *gin.Context) {
	categories, err := h.uc.Categories.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", categories)
}

// ListAll handles GET /admin/blog, drafts included.
func (h *BlogHandler) ListAll(c *gin.Context) {
	page, err := h.uc.List.Execute(c.Request.Context(), listPostsQuery(c, false))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	common.RespondPage(c, page)
}

// GetByID handles GET /admin/blog/:id
func (h *BlogHandler) GetByID(c *gin.Context) {
	post, err := h.uc.Get.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", post)
}

// Create handles POST /admin/blog
func (h *BlogHandler) Create(c *gin.Context) {
	var req PostRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	post, err := h.uc.Create.Execute(c.Request.Context(), req.toCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, post, "Post created")
}

// Update handles PUT /admin/blog/:id
func (h *BlogHandler) Update(c *gin.Context) {
	var req PostRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	post, err := h.uc.Update.Execute(c.Request.Context(), c.Param("id"), req.toCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Post updated", post)
}

// Delete handles DELETE /admin/blog/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete.Execute(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Post deleted", nil)
}
