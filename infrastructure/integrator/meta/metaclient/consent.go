package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
)

const callbackPath = "/meta/callback"

var (
	ErrStateMismatch    = errors.New("state do callback de autorização não confere")
	ErrCallbackTimeout  = errors.New("tempo esgotado aguardando o callback de autorização")
	ErrMissingState     = errors.New("state esperado é obrigatório")
	ErrMissingCode      = errors.New("callback sem código de autorização")
	ErrConsentCancelled = errors.New("autorização cancelada pelo usuário")
)

// NewState gera o nonce que amarra o callback ao pedido de consentimento
func NewState() (string, error) {
	return gonanoid.New(32)
}

// AuthorizationURL monta a URL do diálogo de consentimento do Meta
func (c *MetaClient) AuthorizationURL(state, redirectURI string) (string, error) {
	if state == "" {
		return "", ErrMissingState
	}
	if redirectURI == "" {
		return "", errors.New("redirect uri é obrigatório")
	}

	parsed, err := url.Parse(c.Cfg.Meta.DialogURL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL do diálogo: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("URL do diálogo deve usar http ou https")
	}
	parsed.Path = fmt.Sprintf("/%s/dialog/oauth", c.Cfg.Meta.Version)

	q := parsed.Query()
	q.Set("client_id", c.Cfg.Meta.AppID)
	q.Set("redirect_uri", redirectURI)
	q.Set("state", state)
	q.Set("response_type", "code")
	if len(c.Cfg.Meta.Scopes) > 0 {
		q.Set("scope", strings.Join(c.Cfg.Meta.Scopes, ","))
	}
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

// CallbackError converte os parâmetros de erro do callback. access_denied
// significa que o usuário fechou ou recusou o diálogo.
func CallbackError(oauthError, reason, description string) error {
	if oauthError == "" {
		return nil
	}

	detail := description
	if detail == "" {
		detail = reason
	}

	if oauthError == "access_denied" {
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrConsentCancelled, detail)
		}
		return ErrConsentCancelled
	}

	if detail != "" {
		return fmt.Errorf("erro no consentimento (%s): %s", oauthError, detail)
	}
	return fmt.Errorf("erro no consentimento: %s", oauthError)
}

// CallbackServer recebe o redirecionamento do diálogo em um listener local
type CallbackServer struct {
	expectedState string
	listener      net.Listener
	server        *http.Server
	resultCh      chan callbackResult
	resultOnce    sync.Once
	closeOnce     sync.Once
}

type callbackResult struct {
	code string
	err  error
}

func StartCallbackServer(listenAddr, expectedState string) (*CallbackServer, error) {
	if expectedState == "" {
		return nil, ErrMissingState
	}
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir listener do callback: %w", err)
	}

	cb := &CallbackServer{
		expectedState: expectedState,
		listener:      listener,
		resultCh:      make(chan callbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, cb.handleCallback)

	cb.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if serveErr := cb.server.Serve(cb.listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			cb.trySendResult(callbackResult{err: serveErr})
		}
	}()

	return cb, nil
}

func (c *CallbackServer) RedirectURI() string {
	if tcpAddr, ok := c.listener.Addr().(*net.TCPAddr); ok {
		return fmt.Sprintf("http://localhost:%d%s", tcpAddr.Port, callbackPath)
	}
	return "http://localhost" + callbackPath
}

// WaitForCode bloqueia até o callback, o cancelamento do contexto ou o timeout
func (c *CallbackServer) WaitForCode(ctx context.Context, timeout time.Duration) (string, error) {
	defer c.Close()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-c.resultCh:
		return result.code, result.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", ErrCallbackTimeout
	}
}

func (c *CallbackServer) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		closeErr = c.server.Close()
	})
	return closeErr
}

func (c *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("state") != c.expectedState {
		logrus.Warn("meta: callback com state inválido")
		c.trySendResult(callbackResult{err: ErrStateMismatch})
		http.Error(w, "state inválido", http.StatusBadRequest)
		return
	}

	if err := CallbackError(query.Get("error"), query.Get("error_reason"), query.Get("error_description")); err != nil {
		c.trySendResult(callbackResult{err: err})
		http.Error(w, "autorização não concluída", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		c.trySendResult(callbackResult{err: ErrMissingCode})
		http.Error(w, "código ausente", http.StatusBadRequest)
		return
	}

	c.trySendResult(callbackResult{code: code})
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Conta conectada. Você já pode fechar esta janela."))
}

func (c *CallbackServer) trySendResult(result callbackResult) {
	c.resultOnce.Do(func() {
		c.resultCh <- result
	})
}
