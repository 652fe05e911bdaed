package checkoutpaystack

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopreconciler/lib/mycontext"
	"github.com/MarcGrol/shopreconciler/lib/myerrors"
	"github.com/MarcGrol/shopreconciler/lib/myhttp"
	"github.com/MarcGrol/shopreconciler/lib/mylog"
	"github.com/MarcGrol/shopreconciler/lib/mypublisher"
	"github.com/MarcGrol/shopreconciler/lib/myuuid"
	"github.com/MarcGrol/shopreconciler/services/checkoutapi"
	"github.com/MarcGrol/shopreconciler/services/paystack"
)

const maxWebhookBodySize = 1 << 20

type webService struct {
	cfg     paystack.Config
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(cfg paystack.Config, uuider myuuid.UUIDer, payer paystack.Payer, confirmer paystack.Confirmer, writer OrderWriter, publisher mypublisher.Publisher) *webService {
	logger := mylog.New("checkoutpaystack")
	return &webService{
		cfg:     cfg,
		logger:  logger,
		service: newService(cfg, logger, uuider, payer, confirmer, writer, publisher),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	// Called by the shop when the shopper presses "pay"
	router.HandleFunc("/api/checkout", s.startCheckout()).Methods("POST")

	// Server push by paystack
	router.HandleFunc("/api/webhook/paystack", s.webhookNotification()).Methods("POST")
	router.HandleFunc("/api/webhook/paystack", s.webhookAlive()).Methods("GET")

	// Polled by the browser after paystack redirected back
	router.HandleFunc("/api/checkout/verify", s.verify()).Methods("GET")

	if s.cfg.IsMock() {
		router.HandleFunc("/api/checkout/mock-redirect", s.mockRedirect()).Methods("GET")
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Paystack endpoints registered in %s mode", s.cfg.Mode)

	return nil
}

func (s *webService) startCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		checkout, err := checkoutapi.NewFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		checkoutURL, err := s.service.startCheckout(c, checkout)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		http.Redirect(w, r, checkoutURL, http.StatusSeeOther)
	}
}

// webhookNotification needs the raw body: the signature is computed over the exact bytes received
func (s *webService) webhookNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodySize))
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewMalformedEventError(fmt.Errorf("error reading webhook body: %s", err)))
			return
		}

		signature := r.Header.Get("x-paystack-signature")
		if signature == "" {
			signature = r.Header.Get("x-signature")
		}

		message, err := s.service.webhookNotification(c, body, signature)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			OK:      true,
			Message: message,
		})
	}
}

func (s *webService) webhookAlive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			OK:      true,
			Message: "Paystack webhook endpoint",
		})
	}
}

func (s *webService) verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		result, err := s.service.verify(c, r.URL.Query().Get("reference"))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, result)
	}
}

func (s *webService) mockRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		redirectURL, err := s.service.mockRedirect(c, r.URL.Query().Get("reference"))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		http.Redirect(w, r, redirectURL, http.StatusSeeOther)
	}
}
