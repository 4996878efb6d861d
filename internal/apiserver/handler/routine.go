package handler

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/principal"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/dto"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
	"github.com/kumar-97/kukkuta-Kendra/internal/storage"
	"github.com/kumar-97/kukkuta-Kendra/pkg/metrics"
	"github.com/kumar-97/kukkuta-Kendra/pkg/trace"
)

// photoField is the multipart field carrying an uploaded photo
const photoField = "file"

// Routine serves daily husbandry logs, mortality records and photo uploads
type Routine struct {
	db        database.Database
	photos    storage.PhotoStore
	maxUpload int64
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewRoutine(db database.Database, photos storage.PhotoStore, maxUpload int64, m *metrics.Metrics, logger *zap.Logger) *Routine {
	return &Routine{
		db:        db,
		photos:    photos,
		maxUpload: maxUpload,
		metrics:   m,
		logger:    logger.Named("apiserver.handler.routine"),
	}
}

func (h *Routine) farmer(c *gin.Context) (*database.Farmer, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		return nil, false
	}
	f, err := principal.RequireFarmer(c.Request.Context(), p, h.db)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load farmer profile", err, nil)
		return nil, false
	}
	return f, true
}

// Create records one day of data for a farm owned by the caller
func (h *Routine) Create(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	var req dto.RoutineRequest
	if !bindJSON(c, &req) {
		return
	}

	routine := &database.RoutineData{
		FarmerID:               f.ID,
		FarmID:                 req.FarmID,
		Date:                   req.Date,
		MortalityCount:         req.MortalityCount,
		FeedConsumptionKg:      req.FeedConsumptionKg,
		AverageBirdWeightG:     req.AverageBirdWeightG,
		WaterConsumptionLiters: req.WaterConsumptionLiters,
		TemperatureCelsius:     req.TemperatureCelsius,
		HumidityPercentage:     req.HumidityPercentage,
		Notes:                  req.Notes,
	}
	if err := h.db.CreateRoutine(c.Request.Context(), routine); err != nil {
		if errors.Is(err, database.ErrConflict) {
			i18n.RespondWithError(c, i18n.ErrRoutineExists)
			return
		}
		respondStoreError(c, h.logger, "failed to create routine data", err, i18n.ErrFarmNotFound)
		return
	}
	c.JSON(http.StatusCreated, routine)
}

// List returns the caller's routine data, newest first
func (h *Routine) List(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	page, err := queryPage(c)
	if err != nil {
		badQuery(c, err)
		return
	}
	farmID, err := queryUint(c, "farm_id")
	if err != nil {
		badQuery(c, err)
		return
	}
	dates, err := queryDateRange(c, "start_date", "end_date")
	if err != nil {
		badQuery(c, err)
		return
	}

	routines, err := h.db.ListRoutines(c.Request.Context(), database.RoutineFilter{
		Page:      page,
		DateRange: dates,
		FarmerID:  f.ID,
		FarmID:    farmID,
	})
	if err != nil {
		respondStoreError(c, h.logger, "failed to list routine data", err, nil)
		return
	}
	if routines == nil {
		routines = []*database.RoutineData{}
	}
	c.JSON(http.StatusOK, routines)
}

// Get returns one routine entry with its mortality records
func (h *Routine) Get(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	routine, err := h.db.GetRoutine(c.Request.Context(), id, f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load routine data", err, i18n.ErrRoutineNotFound)
		return
	}
	if routine.MortalityRecords == nil {
		routine.MortalityRecords = []database.MortalityRecord{}
	}
	c.JSON(http.StatusOK, routine)
}

func (h *Routine) Update(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RoutineUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	routine, err := h.db.UpdateRoutine(c.Request.Context(), id, f.ID, req.Updates())
	if err != nil {
		respondStoreError(c, h.logger, "failed to update routine data", err, i18n.ErrRoutineNotFound)
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (h *Routine) Delete(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	routine, err := h.db.DeleteRoutine(c.Request.Context(), id, f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to delete routine data", err, i18n.ErrRoutineNotFound)
		return
	}
	for _, record := range routine.MortalityRecords {
		h.releasePhoto(c.Request.Context(), record.PhotoURL)
	}
	i18n.RespondOK(c, i18n.SuccessRoutineDeleted, nil, nil)
}

// CreateMortality logs deaths against one of the caller's routine entries
func (h *Routine) CreateMortality(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	var req dto.MortalityRequest
	if !bindJSON(c, &req) {
		return
	}
	record := &database.MortalityRecord{
		RoutineDataID: req.RoutineDataID,
		FarmerID:      f.ID,
		Count:         req.Count,
		Cause:         req.Cause,
		AgeDays:       req.AgeDays,
		PhotoURL:      req.PhotoURL,
		Notes:         req.Notes,
	}
	if err := h.db.CreateMortality(c.Request.Context(), record); err != nil {
		respondStoreError(c, h.logger, "failed to create mortality record", err, i18n.ErrRoutineNotFound)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Routine) ListMortality(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	routineID, err := queryUint(c, "routine_data_id")
	if err != nil {
		badQuery(c, err)
		return
	}
	records, err := h.db.ListMortality(c.Request.Context(), f.ID, routineID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to list mortality records", err, nil)
		return
	}
	if records == nil {
		records = []*database.MortalityRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *Routine) UpdateMortality(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.MortalityUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.db.UpdateMortality(c.Request.Context(), id, f.ID, req.Updates())
	if err != nil {
		respondStoreError(c, h.logger, "failed to update mortality record", err, i18n.ErrMortalityNotFound)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Routine) DeleteMortality(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record, err := h.db.DeleteMortality(c.Request.Context(), id, f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to delete mortality record", err, i18n.ErrMortalityNotFound)
		return
	}
	h.releasePhoto(c.Request.Context(), record.PhotoURL)
	i18n.RespondOK(c, i18n.SuccessMortalityDeleted, nil, nil)
}

// releasePhoto removes a stored photo once its record is gone. References
// this server did not issue are left alone. Failures are logged only.
func (h *Routine) releasePhoto(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	err := h.photos.Delete(ctx, ref)
	switch {
	case err == nil:
		h.logger.Debug("removed mortality photo", zap.String("ref", ref))
	case errors.Is(err, storage.ErrInvalidReference), errors.Is(err, fs.ErrNotExist):
	default:
		h.logger.Warn("failed to remove mortality photo", zap.String("ref", ref), zap.Error(err))
	}
}

// UploadPhoto stores a mortality photo and returns the reference to put on
// the record. Only image/* content is accepted.
func (h *Routine) UploadPhoto(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	fh, err := c.FormFile(photoField)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !storage.IsImage(contentType) {
		h.metrics.PhotoUpload("rejected")
		i18n.RespondWithError(c, i18n.ErrNotAnImage)
		return
	}

	span := trace.Tracer(cnst.TraceAPIServer).Start(c.Request.Context(), cnst.SpanPhotoUpload)
	defer span.End()
	span.WithAttrs(attribute.Int64("upload.size", fh.Size), attribute.String("upload.content_type", contentType))

	file, err := fh.Open()
	if err != nil {
		span.RecordError(err)
		h.logger.Error("failed to open upload", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}
	defer file.Close()

	ref, err := h.photos.Save(span.Ctx, f.ID, contentType, file)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, storage.ErrNotImage):
			h.metrics.PhotoUpload("rejected")
			i18n.RespondWithError(c, i18n.ErrNotAnImage)
		case errors.Is(err, storage.ErrTooLarge):
			h.metrics.PhotoUpload("too_large")
			i18n.RespondWithError(c, i18n.ErrFileTooLarge.WithParam("MaxMB", h.maxUpload>>20))
		default:
			h.metrics.PhotoUpload("error")
			h.logger.Error("failed to store photo", zap.Uint("farmer_id", f.ID), zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer)
		}
		return
	}

	h.metrics.PhotoUpload("ok")
	i18n.RespondWithSuccess(c, http.StatusCreated, i18n.SuccessPhotoUploaded, nil, gin.H{
		"file_url": ref,
		"filename": path.Base(ref),
	})
}
