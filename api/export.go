package api

import (
	"bytes"
	"fmt"
	"net/http"

	"hostel/ledger"
	"hostel/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出处理器
type ExportHandler struct {
	store ledger.Store
}

// NewExportHandler 创建导出处理器
func NewExportHandler(store ledger.Store) *ExportHandler {
	return &ExportHandler{store: store}
}

func (h *ExportHandler) statement(c *gin.Context) (*service.Statement, bool) {
	roomID, ok := parseID(c, "id", "room")
	if !ok {
		return nil, false
	}
	snap, err := loadRoomSnapshot(c.Request.Context(), h.store, roomID)
	if err != nil {
		storeError(c, err, "Room not found")
		return nil, false
	}
	return service.NewStatement(snap.room, snap.users, snap.expenses), true
}

// ExportCSV 导出当期结算单为 CSV
// @Summary 导出 CSV
// @Description 当期消费明细及成员结算
// @Tags 导出
// @Produce text/csv
// @Param id path int true "房间ID"
// @Success 200 {file} file "CSV 文件"
// @Failure 404 {object} ErrorResponse "房间不存在"
// @Router /api/rooms/{id}/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	st, ok := h.statement(c)
	if !ok {
		return
	}
	buf := new(bytes.Buffer)
	if err := st.WriteCSV(buf); err != nil {
		zap.L().Error("generate csv statement", zap.Error(err))
		InternalError(c, "Could not generate CSV")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", st.Filename("csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX 导出当期结算单为 Excel
// @Summary 导出 Excel
// @Description 包含消费明细与结算两个工作表
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "房间ID"
// @Success 200 {file} file "Excel 文件"
// @Failure 404 {object} ErrorResponse "房间不存在"
// @Router /api/rooms/{id}/export/xlsx [get]
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	st, ok := h.statement(c)
	if !ok {
		return
	}
	data, err := st.XLSXBytes()
	if err != nil {
		zap.L().Error("generate xlsx statement", zap.Error(err))
		InternalError(c, "Could not generate Excel file")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", st.Filename("xlsx")))
	c.Data(http.StatusOK, xlsxContentType, data)
}
