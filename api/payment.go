package api

import (
	"net/http"

	"github.com/shopspring/decimal"
)

func (s *Server) createPaymentIntent(ctx *Context) error {
	// decode body
	var body struct {
		Price *decimal.Decimal `json:"price"`
	}
	err := ctx.Decode(&body)
	if err != nil {
		return err
	}

	// check price
	if body.Price == nil {
		return InvalidArgument("missing price")
	}

	// create intent
	secret, err := s.bridge.CreateIntent(ctx, *body.Price)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, map[string]string{
		"clientSecret": secret,
	})
}
