package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"
	"roleplay_coach_backend/pkg/logger"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UploadController struct {
	StorageService *service.StorageService
	FileRepo       *repository.FileRepository
}

func NewUploadController(storageService *service.StorageService, fileRepo *repository.FileRepository) *UploadController {
	return &UploadController{
		StorageService: storageService,
		FileRepo:       fileRepo,
	}
}

// UploadRecording godoc
// @Summary Upload a session recording
// @Tags upload
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "audio file"
// @Param sessionId formData int false "session to attach the recording to"
// @Success 201 {object} util.Response{data=model.UploadedFile}
// @Failure 400 {object} util.Response
// @Router /api/uploads/recording [post]
func (c *UploadController) UploadRecording(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedAudioExt(ext) {
		util.BadRequest(ctx, fmt.Sprintf("unsupported audio format %q", ext))
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+ext)
	if err := ctx.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	var duration float64
	if info, err := util.GetAudioInfo(tmpPath); err != nil {
		logger.Log.Warn("could not probe recording", zap.String("file", fileHeader.Filename), zap.Error(err))
	} else {
		duration = info.Duration
	}

	objectName := fmt.Sprintf("recordings/%d/%s%s", claims.UserID, uuid.NewString(), ext)
	src, err := os.Open(tmpPath)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	url, err := c.StorageService.Upload(ctx.Request.Context(), objectName, src, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	uploaded := &model.UploadedFile{
		UserID:          claims.UserID,
		ObjectName:      objectName,
		OriginalName:    fileHeader.Filename,
		ContentType:     contentType,
		Size:            fileHeader.Size,
		DurationSeconds: duration,
		URL:             url,
		Purpose:         "recording",
	}
	if sessionID, err := strconv.ParseUint(ctx.PostForm("sessionId"), 10, 32); err == nil {
		id := uint(sessionID)
		uploaded.SessionID = &id
	}

	if err := c.FileRepo.Create(uploaded); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, uploaded)
}

// ListFiles godoc
// @Summary Files uploaded by the current user
// @Tags upload
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.UploadedFile}
// @Router /api/uploads [get]
func (c *UploadController) ListFiles(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	files, err := c.FileRepo.FindByUserID(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, files)
}

// DeleteFile godoc
// @Summary Delete an uploaded file
// @Tags upload
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "file id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/uploads/{id} [delete]
func (c *UploadController) DeleteFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid file id")
		return
	}

	file, err := c.FileRepo.FindByIDAndUserID(id, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if err := c.StorageService.Delete(ctx.Request.Context(), file.ObjectName); err != nil {
		logger.Log.Warn("object removal failed", zap.String("object", file.ObjectName), zap.Error(err))
	}
	if err := c.FileRepo.Delete(file.ID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func allowedAudioExt(ext string) bool {
	for _, allowed := range util.AllowedAudioExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
