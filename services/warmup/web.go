package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopreconciler/lib/mycontext"
	"github.com/MarcGrol/shopreconciler/lib/myerrors"
	"github.com/MarcGrol/shopreconciler/lib/myhttp"
	"github.com/MarcGrol/shopreconciler/lib/mylog"
	"github.com/MarcGrol/shopreconciler/lib/mystore"
	"github.com/MarcGrol/shopreconciler/services/orders"
)

type webService struct {
	logger     mylog.Logger
	orderStore mystore.Store[orders.Order]
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(orderStore mystore.Store[orders.Order]) *webService {
	return &webService{
		logger:     mylog.New("warmup"),
		orderStore: orderStore,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

// warmupPage opens the connection to the order store before the first webhook arrives
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, _, err := s.orderStore.Get(c, "warmup")
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewUnavailableError(fmt.Errorf("order store not reachable: %s", err)))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			OK:      true,
			Message: "Successfully processed warmup request",
		})
	}
}
