package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/koiexpress/shipping-gateway/internal/service"
	"github.com/koiexpress/shipping-gateway/pkg/errors"
)

// rechargeRequest is the payload for starting a wallet top-up
type rechargeRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// walletHandler returns the caller's balance card
func (s *Server) walletHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	wallet, err := s.walletService.Wallet(r.Context(), sess)

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    wallet,
	})
}

// createWalletHandler provisions a wallet for a user who has none yet
func (s *Server) createWalletHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	wallet, err := s.walletService.CreateWallet(r.Context(), s.sessions, sess)

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Data:    wallet,
	})
}

// transactionsHandler returns one page of the caller's wallet history
func (s *Server) transactionsHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	page, err := s.walletService.Transactions(r.Context(), sess, queryPage(r))

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    page,
	})
}

// rechargeHandler starts a top-up and returns the payment-gateway URL
func (s *Server) rechargeHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	var req rechargeRequest

	if err := s.decodeBody(r, &req); err != nil {
		s.respondWithAppError(w, err)
		return
	}
	defer r.Body.Close()

	amount, err := decimal.NewFromString(req.Amount)

	if err != nil {
		s.respondWithAppError(w, errors.NewInvalidInputError("invalid amount"))
		return
	}

	payURL, err := s.walletService.Recharge(r.Context(), sess, amount)

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]string{"payUrl": payURL},
	})
}

// paymentReturnHandler settles a top-up when the gateway redirects back.
// The VNPay parameters arrive as query strings.
func (s *Server) paymentReturnHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	query := r.URL.Query()

	ret := service.PaymentReturn{
		TransactionStatus: query.Get("vnp_TransactionStatus"),
		Amount:            query.Get("vnp_Amount"),
		PayDate:           query.Get("vnp_PayDate"),
		TransactionNo:     query.Get("vnp_TransactionNo"),
	}

	confirmation, err := s.walletService.ConfirmDeposit(r.Context(), sess, ret)

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    confirmation,
	})
}
