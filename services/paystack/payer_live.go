package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
	"github.com/MarcGrol/shopreconciler/lib/myhttpclient"
	"github.com/MarcGrol/shopreconciler/lib/mylog"
)

type livePayer struct {
	logger     mylog.Logger
	apiBaseURL string
	secretKey  string
	httpClient myhttpclient.HTTPSender
}

func newLivePayer(apiBaseURL string, secretKey string, httpClient myhttpclient.HTTPSender) *livePayer {
	return &livePayer{
		logger:     mylog.New("paystack"),
		apiBaseURL: apiBaseURL,
		secretKey:  secretKey,
		httpClient: httpClient,
	}
}

type initializeRequest struct {
	Email     string         `json:"email"`
	Amount    int64          `json:"amount"`
	Reference string         `json:"reference"`
	Metadata  map[string]any `json:"metadata"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    verifiedPayment `json:"data"`
}

type verifiedPayment struct {
	ID        int64           `json:"id"`
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	PaidAt    string          `json:"paid_at"`
	CreatedAt string          `json:"created_at"`
	Metadata  json.RawMessage `json:"metadata"`
	Customer  struct {
		ID           int64  `json:"id"`
		Email        string `json:"email"`
		CustomerCode string `json:"customer_code"`
	} `json:"customer"`
}

func (p *livePayer) Initialize(c context.Context, email string, amountMinorUnits int64, reference string, metadata map[string]any) (InitializeResult, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	requestBody, err := json.Marshal(initializeRequest{
		Email:     email,
		Amount:    amountMinorUnits,
		Reference: reference,
		Metadata:  metadata,
	})
	if err != nil {
		return InitializeResult{}, myerrors.NewInternalError(fmt.Errorf("error marshalling initialize-request: %s", err))
	}

	httpStatus, respBody, err := p.httpClient.Send(c, http.MethodPost, p.apiBaseURL+"/transaction/initialize", p.headers(), requestBody)
	if err != nil {
		return InitializeResult{}, myerrors.NewGatewayError(fmt.Errorf("error initializing transaction %s: %s", reference, err))
	}
	if !isSuccess(httpStatus) {
		return InitializeResult{}, myerrors.NewGatewayError(fmt.Errorf("error initializing transaction %s: http-status %d: %s", reference, httpStatus, providerMessage(respBody)))
	}

	resp := initializeResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return InitializeResult{}, myerrors.NewGatewayError(fmt.Errorf("error parsing initialize-response for %s: %s", reference, err))
	}
	if !resp.Status {
		return InitializeResult{}, myerrors.NewGatewayError(fmt.Errorf("initialize of %s rejected: %s", reference, resp.Message))
	}

	p.logger.Log(c, reference, mylog.SeverityInfo, "Initialized transaction %s", reference)

	return InitializeResult{
		CheckoutURL: resp.Data.AuthorizationURL,
		AccessCode:  resp.Data.AccessCode,
	}, nil
}

func (p *livePayer) Verify(c context.Context, reference string) (Transaction, error) {
	httpStatus, respBody, err := p.httpClient.Send(c, http.MethodGet, p.apiBaseURL+"/transaction/verify/"+url.PathEscape(reference), p.headers(), nil)
	if err != nil {
		return Transaction{}, myerrors.NewGatewayError(fmt.Errorf("error verifying transaction %s: %s", reference, err))
	}
	if !isSuccess(httpStatus) {
		return Transaction{}, myerrors.NewGatewayError(fmt.Errorf("error verifying transaction %s: http-status %d: %s", reference, httpStatus, providerMessage(respBody)))
	}

	resp := verifyResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return Transaction{}, myerrors.NewGatewayError(fmt.Errorf("error parsing verify-response for %s: %s", reference, err))
	}
	if !resp.Status {
		return Transaction{}, myerrors.NewGatewayError(fmt.Errorf("verification of %s rejected: %s", reference, resp.Message))
	}

	p.logger.Log(c, reference, mylog.SeverityInfo, "Verified transaction %s: %s", reference, resp.Data.Status)

	return resp.Data.toTransaction(reference), nil
}

func (p *livePayer) headers() http.Header {
	return http.Header{
		"Authorization": []string{"Bearer " + p.secretKey},
	}
}

func (v verifiedPayment) toTransaction(reference string) Transaction {
	tx := Transaction{
		ID:               v.ID,
		Reference:        v.Reference,
		Status:           statusFromProvider(v.Status),
		AmountMinorUnits: v.Amount,
		Currency:         v.Currency,
		CustomerEmail:    v.Customer.Email,
		Metadata:         DecodeMetadata(v.Metadata),
	}
	if tx.Reference == "" {
		tx.Reference = reference
	}
	if v.Customer.ID != 0 {
		tx.CustomerID = strconv.FormatInt(v.Customer.ID, 10)
	}
	if createdAt, err := time.Parse(time.RFC3339, v.CreatedAt); err == nil {
		tx.CreatedAt = createdAt
	}
	if paidAt, err := time.Parse(time.RFC3339, v.PaidAt); err == nil {
		tx.PaidAt = &paidAt
	}
	return tx
}

// DecodeMetadata accepts the metadata as an object, a JSON encoded object or nothing at all
func DecodeMetadata(raw json.RawMessage) map[string]any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]any{}
	}

	metadata := map[string]any{}
	if json.Unmarshal(raw, &metadata) == nil && metadata != nil {
		return metadata
	}

	asString := ""
	metadata = map[string]any{}
	if json.Unmarshal(raw, &asString) == nil && json.Unmarshal([]byte(asString), &metadata) == nil && metadata != nil {
		return metadata
	}

	return map[string]any{}
}

func isSuccess(httpStatus int) bool {
	return httpStatus >= 200 && httpStatus < 300
}

func providerMessage(body []byte) string {
	resp := struct {
		Message string `json:"message"`
	}{}
	if json.Unmarshal(body, &resp) == nil && resp.Message != "" {
		return resp.Message
	}
	return string(body)
}
