package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/cache"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/export"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/principal"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/dto"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
	"github.com/kumar-97/kukkuta-Kendra/pkg/metrics"
	"github.com/kumar-97/kukkuta-Kendra/pkg/trace"
)

const (
	transitionApprove = "approve"
	transitionReject  = "reject"
)

// Report serves production reports for farmers and the admin approval flow
type Report struct {
	db      database.Database
	stats   *cache.Cache
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewReport(db database.Database, stats *cache.Cache, m *metrics.Metrics, logger *zap.Logger) *Report {
	return &Report{db: db, stats: stats, metrics: m, logger: logger.Named("apiserver.handler.report"), now: time.Now}
}

func (h *Report) admin(c *gin.Context) (*principal.Admin, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		return nil, false
	}
	a, err := principal.RequireAdmin(p)
	if err != nil {
		i18n.RespondWithError(c, err)
		return nil, false
	}
	return a, true
}

func (h *Report) farmer(c *gin.Context) (*database.Farmer, bool) {
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

// Create submits a new draft report with its cost lines
func (h *Report) Create(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	var req dto.ReportRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		report *database.ProductionReport
		err    error
	)
	for range numberAttempts {
		report = newReport(f.ID, &req)
		report.ReportNumber = database.NewReportNumber(h.now())
		err = h.db.CreateReport(c.Request.Context(), report)
		if !errors.Is(err, database.ErrConflict) {
			break
		}
		h.logger.Warn("report number collision, retrying", zap.String("report_number", report.ReportNumber))
	}
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			err = i18n.ErrReportNumberConflict
		}
		respondStoreError(c, h.logger, "failed to create report", err, nil)
		return
	}

	h.logger.Info("report submitted", zap.Uint("report_id", report.ID), zap.Uint("farmer_id", f.ID))
	c.JSON(http.StatusCreated, report)
}

func newReport(farmerID uint, req *dto.ReportRequest) *database.ProductionReport {
	report := &database.ProductionReport{
		FarmerID:              farmerID,
		FarmerName:            req.FarmerName,
		Place:                 req.Place,
		HatchDate:             req.HatchDate,
		TotalMortalityPercent: req.TotalMortalityPercent,
		ChicksHoused:          req.ChicksHoused,
		MortalityNos:          req.MortalityNos,
		BirdLifted:            req.BirdLifted,
		Shortage:              req.Shortage,
		BirdWeightKg:          req.BirdWeightKg,
		FcrPercent:            req.FcrPercent,
		LiftingPercent:        req.LiftingPercent,
		AvgWeightKg:           req.AvgWeightKg,
		MeanAgeDays:           req.MeanAgeDays,
		FarmerProfitKg:        req.FarmerProfitKg,
		MspKg:                 req.MspKg,
		LotGrade:              req.LotGrade,
		ProductionCostPerKg:   req.ProductionCostPerKg,
		BasicRate:             req.BasicRate,
		PerformanceBonus:      req.PerformanceBonus,
		Balance:               req.Balance,
		ShortingBirdKg:        req.ShortingBirdKg,
		ExtraMortality:        req.ExtraMortality,
		MinimumGrowingCharge:  req.MinimumGrowingCharge,
		FinalAmount:           req.FinalAmount,
		CostDetails:           make([]database.CostDetail, 0, len(req.CostDetails)),
	}
	for _, cd := range req.CostDetails {
		report.CostDetails = append(report.CostDetails, database.CostDetail{
			Item:     cd.Item,
			Quantity: cd.Quantity,
			Rate:     cd.Rate,
			Amount:   cd.Amount,
		})
	}
	return report
}

// List returns the caller's reports filtered by hatch date and approval
func (h *Report) List(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	filter.FarmerID = &f.ID
	h.list(c, filter)
}

func (h *Report) filter(c *gin.Context) (database.ReportFilter, bool) {
	var filter database.ReportFilter
	var err error
	if filter.Page, err = queryPage(c); err != nil {
		badQuery(c, err)
		return filter, false
	}
	if filter.DateRange, err = queryDateRange(c, "start_date", "end_date"); err != nil {
		badQuery(c, err)
		return filter, false
	}
	if filter.Approved, err = queryBool(c, "is_approved"); err != nil {
		badQuery(c, err)
		return filter, false
	}
	filter.WithCost = true
	return filter, true
}

func (h *Report) list(c *gin.Context, filter database.ReportFilter) {
	reports, err := h.db.ListReports(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, h.logger, "failed to list reports", err, nil)
		return
	}
	if reports == nil {
		reports = []*database.ProductionReport{}
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Report) Get(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	report, err := h.db.GetFarmerReport(c.Request.Context(), id, f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load report", err, i18n.ErrReportNotFound)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Update edits a draft; approved reports are locked
func (h *Report) Update(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReportUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	report, err := h.db.UpdateReport(c.Request.Context(), id, f.ID, req.Updates())
	if err != nil {
		h.metrics.ReportTransition("edit", string(i18n.KindOf(storeError(err, nil))))
		respondStoreError(c, h.logger, "failed to update report", err, i18n.ErrReportNotFound)
		return
	}
	h.metrics.ReportTransition("edit", "ok")
	c.JSON(http.StatusOK, report)
}

func (h *Report) Delete(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.db.DeleteReport(c.Request.Context(), id, f.ID); err != nil {
		respondStoreError(c, h.logger, "failed to delete report", err, i18n.ErrReportNotFound)
		return
	}
	i18n.RespondOK(c, i18n.SuccessReportDeleted, nil, nil)
}

// AddCostDetail appends a cost line to one of the caller's drafts
func (h *Report) AddCostDetail(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	var req dto.CostDetailCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	detail := &database.CostDetail{
		ProductionReportID: req.ProductionReportID,
		Item:               req.Item,
		Quantity:           req.Quantity,
		Rate:               req.Rate,
		Amount:             req.Amount,
	}
	if err := h.db.AddCostDetail(c.Request.Context(), f.ID, detail); err != nil {
		respondStoreError(c, h.logger, "failed to add cost detail", err, i18n.ErrReportNotFound)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *Report) ListCostDetails(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	reportID, err := queryUint(c, "production_report_id")
	if err != nil {
		badQuery(c, err)
		return
	}
	if reportID == nil {
		badQuery(c, errors.New("production_report_id is required"))
		return
	}
	details, err := h.db.ListCostDetails(c.Request.Context(), *reportID, f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to list cost details", err, i18n.ErrReportNotFound)
		return
	}
	if details == nil {
		details = []*database.CostDetail{}
	}
	c.JSON(http.StatusOK, details)
}

// AdminList lists reports of every farmer
func (h *Report) AdminList(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	farmerID, err := queryUint(c, "farmer_id")
	if err != nil {
		badQuery(c, err)
		return
	}
	filter.FarmerID = farmerID
	h.list(c, filter)
}

func (h *Report) AdminGet(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	report, err := h.db.GetReport(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load report", err, i18n.ErrReportNotFound)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Approve moves a draft to approved. Approving twice fails with InvalidState.
func (h *Report) Approve(c *gin.Context) {
	h.transition(c, transitionApprove)
}

// Reject returns an approved report to draft so the farmer can edit it again
func (h *Report) Reject(c *gin.Context) {
	h.transition(c, transitionReject)
}

func (h *Report) transition(c *gin.Context, transition string) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	spanName, action := cnst.SpanReportApprove, cnst.ActionApproveReport
	if transition == transitionReject {
		spanName, action = cnst.SpanReportReject, cnst.ActionRejectReport
	}
	span := trace.Tracer(cnst.TraceAPIServer).Start(c.Request.Context(), spanName)
	defer span.End()
	span.WithAttrs(attribute.Int64(cnst.AttrReportID, int64(id)), attribute.Int64(cnst.AttrUserID, int64(admin.User().ID)))

	var report *database.ProductionReport
	err := h.db.Transaction(span.Ctx, func(ctx context.Context) error {
		var err error
		if transition == transitionApprove {
			report, err = h.db.ApproveReport(ctx, id, admin.User().ID, h.now().UTC())
		} else {
			report, err = h.db.RejectReport(ctx, id)
		}
		if err != nil {
			return err
		}
		return h.db.CreateAdminLog(ctx, adminLog(c, admin, action, cnst.TargetReport, id,
			fmt.Sprintf("%s report %s", transition, report.ReportNumber)))
	})
	if err != nil {
		mapped := storeError(err, i18n.ErrReportNotFound)
		span.WithAttrs(attribute.String(cnst.AttrErrorKind, string(i18n.KindOf(mapped))))
		span.RecordError(err)
		h.metrics.ReportTransition(transition, string(i18n.KindOf(mapped)))
		respondStoreError(c, h.logger, "failed to "+transition+" report", err, i18n.ErrReportNotFound)
		return
	}

	h.metrics.ReportTransition(transition, "ok")
	clearStats(c.Request.Context(), h.stats, h.logger)
	h.logger.Info("report transitioned",
		zap.String("transition", transition),
		zap.Uint("report_id", id),
		zap.Uint("admin_id", admin.User().ID))
	c.JSON(http.StatusOK, report)
}

// Export streams the filtered reports as an XLSX workbook
func (h *Report) Export(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	farmerID, err := queryUint(c, "farmer_id")
	if err != nil {
		badQuery(c, err)
		return
	}
	filter.FarmerID = farmerID
	filter.Page = database.Page{}

	span := trace.Tracer(cnst.TraceAPIServer).Start(c.Request.Context(), cnst.SpanReportExport)
	defer span.End()

	reports, err := h.db.ListReports(span.Ctx, filter)
	if err != nil {
		span.RecordError(err)
		respondStoreError(c, h.logger, "failed to load reports for export", err, nil)
		return
	}
	span.WithAttrs(attribute.Int("export.rows", len(reports)))

	filename := fmt.Sprintf("production_reports_%s.xlsx", h.now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", export.ContentType)
	c.Status(http.StatusOK)
	if err := export.WriteReports(c.Writer, reports); err != nil {
		span.RecordError(err)
		h.logger.Error("failed to write report export", zap.Error(err))
	}
}
