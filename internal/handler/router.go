package handler

import "github.com/gin-gonic/gin"

// Register mounts the dashboard API under /api/v1.
func Register(r gin.IRouter, boardHandler *BoardHandler, passengerHandler *PassengerHandler, trainHandler *TrainHandler) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/board", boardHandler.HandleBoard)
		v1.GET("/reminders", boardHandler.HandleReminders)

		v1.GET("/passengers", passengerHandler.HandleList)
		v1.POST("/passengers", passengerHandler.HandleCreate)
		v1.POST("/passengers/import", passengerHandler.HandleImport)
		v1.PUT("/passengers/:id", passengerHandler.HandleUpdate)
		v1.POST("/passengers/:id/leave", passengerHandler.HandleLeave)

		v1.GET("/trains", trainHandler.HandleList)
		v1.PUT("/trains", trainHandler.HandleReplace)
		v1.GET("/trains/:trainNo", trainHandler.HandleDetail)
		v1.PUT("/trains/:trainNo/ticket-time", trainHandler.HandleTicketTime)
		v1.PUT("/trains/:trainNo/arrival-time", trainHandler.HandleArrivalTime)
	}
}
