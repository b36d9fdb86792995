package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/service/desk"
)

type timeBody struct {
	Time string `json:"time"`
}

type TrainHandler struct {
	desk *desk.Service
}

func NewTrainHandler(deskService *desk.Service) *TrainHandler {
	return &TrainHandler{desk: deskService}
}

func (h *TrainHandler) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, envelope{Data: h.desk.Trains()})
}

func (h *TrainHandler) HandleDetail(c *gin.Context) {
	detail, err := h.desk.TrainDetail(c.Request.Context(), c.Param("trainNo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope{Data: detail})
}

func (h *TrainHandler) HandleReplace(c *gin.Context) {
	var trains []domain.Train
	if err := c.ShouldBindJSON(&trains); err != nil {
		badRequest(c, "invalid train list")
		return
	}

	err := h.desk.ReplaceTrains(c.Request.Context(), trains)
	respondResult(c, http.StatusOK, h.desk.Trains(), err)
}

func (h *TrainHandler) HandleTicketTime(c *gin.Context) {
	var body timeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid time body")
		return
	}

	train, err := h.desk.UpdateTicketTime(c.Request.Context(), c.Param("trainNo"), body.Time)
	respondResult(c, http.StatusOK, train, err)
}

func (h *TrainHandler) HandleArrivalTime(c *gin.Context) {
	var body timeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid time body")
		return
	}

	train, err := h.desk.UpdateArrivalTime(c.Request.Context(), c.Param("trainNo"), body.Time)
	respondResult(c, http.StatusOK, train, err)
}
