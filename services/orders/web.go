package orders

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopreconciler/lib/mycontext"
	"github.com/MarcGrol/shopreconciler/lib/myhttp"
	"github.com/MarcGrol/shopreconciler/lib/mylog"
	"github.com/MarcGrol/shopreconciler/lib/mystore"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

func NewWebService(store mystore.Store[Order]) *webService {
	return &webService{
		logger:  mylog.New("orders"),
		service: newService(store),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/orders", s.listOrders()).Methods("GET")
	router.HandleFunc("/api/orders/{orderUID}", s.getOrder()).Methods("GET")
}

func (s *webService) listOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		userID := r.URL.Query().Get("userId")
		if userID == "" {
			userID = r.URL.Query().Get("clerkUserId")
		}

		orders, err := s.service.listOrdersOfUser(c, userID)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, OrderList{
			Orders: orders,
		})
	}
}

func (s *webService) getOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		order, err := s.service.getOrder(c, mux.Vars(r)["orderUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, order)
	}
}
