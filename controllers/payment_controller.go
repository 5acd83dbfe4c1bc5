package controllers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"

	"boardroom-backend/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

type initiatePaymentPayload struct {
	BookingID uint `json:"booking_id" binding:"required"`
}

// InitiatePayment returns the signed gateway handshake for an external booking.
func (ctrl *PaymentController) InitiatePayment(c *gin.Context) {
	var payload initiatePaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_id is required", "details": err.Error()})
		return
	}

	handshake, err := ctrl.PaymentSvc.Initiate(payload.BookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": handshake})
}

// PaymentNotify is the gateway's server-to-server callback. Signature-gated;
// the gateway retries until it receives "success" in the body.
func (ctrl *PaymentController) PaymentNotify(c *gin.Context) {
	raw, _ := io.ReadAll(c.Request.Body)
	// restore the body so ParseForm can still read it
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))

	params := map[string]string{}
	if err := c.Request.ParseForm(); err == nil {
		for k, vs := range c.Request.PostForm {
			if len(vs) > 0 {
				params[k] = vs[0]
			}
		}
	}
	// some gateway configurations send query-encoded notifications
	for k, vs := range c.Request.URL.Query() {
		if _, ok := params[k]; !ok && len(vs) > 0 {
			params[k] = vs[0]
		}
	}

	if err := ctrl.PaymentSvc.HandleNotification(params); err != nil {
		switch {
		case errors.Is(err, services.ErrBadSignature):
			c.String(http.StatusBadRequest, "bad signature")
		case errors.Is(err, services.ErrPaymentOrderNotFound):
			c.String(http.StatusNotFound, "unknown order")
		default:
			log.Printf("PaymentNotify error: %v", err)
			c.String(http.StatusInternalServerError, "error")
		}
		return
	}
	c.String(http.StatusOK, "success")
}
