package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/forms"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type commentView struct {
	models.Comment
	TextHTML template.HTML
}

// loadPost resolves the :id route parameter. It renders the 404/500 page
// itself and returns nil when there is nothing to show.
func loadPost(c *gin.Context, preload bool) *models.Post {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return nil
	}

	query := db.DB
	if preload {
		query = query.Preload("User")
	}

	var post models.Post
	if err := query.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "Post not found.")
		} else {
			log.Printf("Failed to load post %d: %v", id, err)
			RenderError(c, http.StatusInternalServerError, "Something went wrong.")
		}
		return nil
	}
	return &post
}

// titleTaken reports whether another post already uses title.
func titleTaken(title string, exceptID uint) (bool, error) {
	var count int64
	err := db.DB.Model(&models.Post{}).
		Where("title = ? AND id <> ?", title, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (h *PostHandler) List(c *gin.Context) {
	var posts []models.Post
	if err := db.DB.Preload("User").Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		log.Printf("Failed to list posts: %v", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	Render(c, http.StatusOK, "post/index.html", gin.H{
		"Title": "Home",
		"Posts": posts,
	})
}

func (h *PostHandler) Show(c *gin.Context) {
	post := loadPost(c, true)
	if post == nil {
		return
	}
	h.renderShow(c, http.StatusOK, post)
}

func (h *PostHandler) renderShow(c *gin.Context, code int, post *models.Post) {
	var comments []models.Comment
	db.DB.Preload("User").Where("post_id = ?", post.ID).Order("created_at ASC, id ASC").Find(&comments)

	views := make([]commentView, len(comments))
	for i, com := range comments {
		views[i] = commentView{Comment: com, TextHTML: utils.RenderMarkdown(com.Text)}
	}

	Render(c, code, "post/show.html", gin.H{
		"Title":    post.Title,
		"Post":     post,
		"BodyHTML": utils.RenderMarkdown(post.Body),
		"Comments": views,
	})
}

// AddComment handles the comment form on the post page.
func (h *PostHandler) AddComment(c *gin.Context) {
	post := loadPost(c, false)
	if post == nil {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		middleware.AddFlash(c, "Please log in to comment on the post.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	postURL := fmt.Sprintf("/post/%d", post.ID)

	var form forms.CommentForm
	_ = c.ShouldBind(&form)
	forms.Normalize(&form)
	if errs := forms.Validate(&form); len(errs) > 0 {
		middleware.AddFlash(c, errs...)
		c.Redirect(http.StatusFound, postURL)
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   form.Body,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		log.Printf("Failed to create comment on post %d: %v", post.ID, err)
		RenderError(c, http.StatusInternalServerError, "Your comment could not be saved.")
		return
	}

	c.Redirect(http.StatusFound, postURL)
}

func (h *PostHandler) renderForm(c *gin.Context, code int, heading, action string, form forms.PostForm) {
	Render(c, code, "post/form.html", gin.H{
		"Title":   heading,
		"Heading": heading,
		"Action":  action,
		"Form":    form,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "New Post", "/new-post", forms.PostForm{})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form forms.PostForm
	_ = c.ShouldBind(&form)
	forms.Normalize(&form)
	if errs := forms.Validate(&form); len(errs) > 0 {
		middleware.AddFlash(c, errs...)
		h.renderForm(c, http.StatusBadRequest, "New Post", "/new-post", form)
		return
	}

	taken, err := titleTaken(form.Title, 0)
	if err != nil {
		log.Printf("Failed to check post title: %v", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong.")
		return
	}
	if taken {
		middleware.AddFlash(c, "A post with this title already exists.")
		h.renderForm(c, http.StatusBadRequest, "New Post", "/new-post", form)
		return
	}

	post := models.Post{
		UserID:   user.ID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     time.Now().Format(models.DateLayout),
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		log.Printf("Failed to create post %q: %v", post.Title, err)
		RenderError(c, http.StatusInternalServerError, "Your post could not be saved.")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post := loadPost(c, false)
	if post == nil {
		return
	}

	form := forms.PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	h.renderForm(c, http.StatusOK, "Edit Post", fmt.Sprintf("/edit-post/%d", post.ID), form)
}

func (h *PostHandler) Update(c *gin.Context) {
	post := loadPost(c, false)
	if post == nil {
		return
	}
	action := fmt.Sprintf("/edit-post/%d", post.ID)

	var form forms.PostForm
	_ = c.ShouldBind(&form)
	forms.Normalize(&form)
	if errs := forms.Validate(&form); len(errs) > 0 {
		middleware.AddFlash(c, errs...)
		h.renderForm(c, http.StatusBadRequest, "Edit Post", action, form)
		return
	}

	taken, err := titleTaken(form.Title, post.ID)
	if err != nil {
		log.Printf("Failed to check post title: %v", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong.")
		return
	}
	if taken {
		middleware.AddFlash(c, "A post with this title already exists.")
		h.renderForm(c, http.StatusBadRequest, "Edit Post", action, form)
		return
	}

	err = db.DB.Model(post).Updates(map[string]interface{}{
		"title":    form.Title,
		"subtitle": form.Subtitle,
		"img_url":  form.ImgURL,
		"body":     form.Body,
	}).Error
	if err != nil {
		log.Printf("Failed to update post %d: %v", post.ID, err)
		RenderError(c, http.StatusInternalServerError, "Your post could not be saved.")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// Delete removes the post together with its comments.
func (h *PostHandler) Delete(c *gin.Context) {
	post := loadPost(c, false)
	if post == nil {
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
	if err != nil {
		log.Printf("Failed to delete post %d: %v", post.ID, err)
		RenderError(c, http.StatusInternalServerError, "The post could not be deleted.")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
