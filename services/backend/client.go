// Package backend talks to the pharmacy REST API on behalf of the till,
// the history and the dashboard.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mediakasir/apotekpos/lib/myhttpclient"
	"github.com/mediakasir/apotekpos/lib/mylog"
	"github.com/mediakasir/apotekpos/services/backend/wire"
	"github.com/mediakasir/apotekpos/services/dashboard"
	"github.com/mediakasir/apotekpos/services/history"
	"github.com/mediakasir/apotekpos/services/pos"
)

const catalogPageSize = 50

var (
	_ pos.CatalogProvider       = (*Client)(nil)
	_ pos.TransactionService    = (*Client)(nil)
	_ history.TransactionLister = (*Client)(nil)
	_ dashboard.Source          = (*Client)(nil)
)

type Client struct {
	baseURL string
	sender  myhttpclient.HTTPSender
	logger  mylog.Logger
}

func NewClient(baseURL string, sender myhttpclient.HTTPSender) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		sender:  sender,
		logger:  mylog.New("backend"),
	}
}

func (cl *Client) FetchCatalog(c context.Context, branchID string, search string) ([]pos.Product, error) {
	resp := wire.ProductsResponse{}
	err := cl.call(c, http.MethodGet, "products", url.Values{
		"branch_id": {branchID},
		"search":    {search},
		"page":      {"1"},
		"limit":     {strconv.Itoa(catalogPageSize)},
	}, nil, &resp)
	if err != nil {
		return nil, err
	}

	products := make([]pos.Product, 0, len(resp.Data))
	for _, p := range resp.Data {
		products = append(products, p.ToProduct())
	}
	return products, nil
}

func (cl *Client) SubmitCheckout(c context.Context, req pos.CheckoutRequest) (pos.Transaction, error) {
	resp := wire.Transaction{}
	err := cl.call(c, http.MethodPost, "transactions", nil, wire.FromCheckoutRequest(req), &resp)
	if err != nil {
		return pos.Transaction{}, err
	}

	cl.logger.Log(c, resp.ID, mylog.SeverityInfo, "Backend recorded transaction %s", resp.TransactionNumber)

	return resp.ToTransaction(), nil
}

func (cl *Client) ListTransactions(c context.Context, branchID string, page int, limit int) (history.TransactionPage, error) {
	resp := wire.TransactionsResponse{}
	err := cl.call(c, http.MethodGet, "transactions", url.Values{
		"branch_id": {branchID},
		"page":      {strconv.Itoa(page)},
		"limit":     {strconv.Itoa(limit)},
	}, nil, &resp)
	if err != nil {
		return history.TransactionPage{}, err
	}

	txs := make([]pos.Transaction, 0, len(resp.Data))
	for _, tx := range resp.Data {
		txs = append(txs, tx.ToTransaction())
	}
	return history.TransactionPage{
		Transactions: txs,
		Total:        resp.Total,
		Page:         resp.Page,
	}, nil
}

func (cl *Client) GetTransaction(c context.Context, transactionID string) (pos.Transaction, error) {
	resp := wire.Transaction{}
	err := cl.call(c, http.MethodGet, "transactions/"+url.PathEscape(transactionID), nil, nil, &resp)
	if err != nil {
		return pos.Transaction{}, err
	}
	return resp.ToTransaction(), nil
}

func (cl *Client) FetchDashboard(c context.Context, branchID string) (dashboard.Figures, error) {
	resp := wire.Dashboard{}
	err := cl.call(c, http.MethodGet, "dashboard", url.Values{"branch_id": {branchID}}, nil, &resp)
	if err != nil {
		return dashboard.Figures{}, err
	}
	return resp.ToFigures(), nil
}

func (cl *Client) FetchAlerts(c context.Context, branchID string) (dashboard.Alerts, error) {
	resp := wire.Alerts{}
	err := cl.call(c, http.MethodGet, "alerts", url.Values{"branch_id": {branchID}}, nil, &resp)
	if err != nil {
		return dashboard.Alerts{}, err
	}
	return resp.ToAlerts(), nil
}

// call sends req as json (when not nil) and decodes a 2xx answer into resp.
func (cl *Client) call(c context.Context, method string, path string, query url.Values, req any, resp any) error {
	target := cl.baseURL + "/" + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body []byte
	if req != nil {
		var err error
		body, err = json.Marshal(req)
		if err != nil {
			return fmt.Errorf("error marshalling request for %s %s: %w", method, path, err)
		}
	}

	httpRespCode, respBody, err := cl.sender.Send(c, method, target, body)
	if err != nil {
		return err
	}

	if httpRespCode < 200 || httpRespCode >= 300 {
		apiErr := newAPIError(httpRespCode, respBody)
		cl.logger.Log(c, "", mylog.SeverityWarn, "%s %s failed with %d: %s", method, path, httpRespCode, apiErr.Message)
		return apiErr
	}

	err = json.Unmarshal(respBody, resp)
	if err != nil {
		return fmt.Errorf("error parsing response of %s %s: %w", method, path, err)
	}
	return nil
}
