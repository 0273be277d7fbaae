package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setBoardTokenReq struct {
	Token string `json:"token"`
}

func (h SecretsHandler) SetBoardToken(w http.ResponseWriter, r *http.Request) {
	var req setBoardTokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	account := cfg.Source.RemoteOK.TokenAccount
	if account == "" {
		http.Error(w, "source.remoteok.token_account is not configured", http.StatusBadRequest)
		return
	}
	if err := secrets.SetBoardToken(account, req.Token); err != nil {
		http.Error(w, "failed to store token: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
