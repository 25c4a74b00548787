package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/selection"
	"github.com/vfg2006/adlink-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrUnsupportedVersion = errors.New("versão do estado local não suportada")

// StateKey é a chave do estado de um usuário no Store
func StateKey(userID string) string {
	return "state:" + userID
}

// StateRepository lê e grava o LocalState de cada usuário
type StateRepository struct {
	store  Store
	sealer *Sealer
	now    func() time.Time
}

func NewStateRepository(store Store, sealer *Sealer) *StateRepository {
	return &StateRepository{
		store:  store,
		sealer: sealer,
		now:    time.Now,
	}
}

// Load devolve o estado salvo. Ausente ou corrompido vira um estado vazio;
// só falhas do backend retornam erro.
func (r *StateRepository) Load(ctx context.Context, userID string) (*LocalState, error) {
	data, err := r.store.Get(ctx, StateKey(userID))
	if errors.Is(err, ErrNotFound) {
		return NewLocalState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler estado local: %w", err)
	}

	state, err := r.decode(data)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Estado local corrompido, iniciando vazio")
		return NewLocalState(), nil
	}

	return state, nil
}

func (r *StateRepository) Save(ctx context.Context, userID string, state *LocalState) error {
	if state == nil {
		state = NewLocalState()
	}

	data, err := r.encode(state)
	if err != nil {
		return err
	}

	if err := r.store.Set(ctx, StateKey(userID), data); err != nil {
		return fmt.Errorf("erro ao gravar estado local: %w", err)
	}
	return nil
}

func (r *StateRepository) Clear(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, StateKey(userID)); err != nil {
		return fmt.Errorf("erro ao remover estado local: %w", err)
	}
	return nil
}

func (r *StateRepository) encode(state *LocalState) ([]byte, error) {
	doc := stateDocument{
		Version:      CurrentVersion,
		Status:       state.Status,
		Identity:     state.Identity,
		Profile:      state.Profile,
		BusinessInfo: state.BusinessInfo,
		Hierarchy:    state.Hierarchy,
		Selection:    state.Selection,
		UpdatedAt:    r.now().UTC(),
	}
	if doc.Selection.Accounts == nil {
		doc.Selection = selection.New()
	}

	if !state.Credential.IsZero() {
		raw, err := json.Marshal(state.Credential)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar credencial: %w", err)
		}
		if doc.Credential, err = r.sealer.Seal(raw); err != nil {
			return nil, err
		}
	}

	if state.BackendToken != "" {
		sealed, err := r.sealer.Seal([]byte(state.BackendToken))
		if err != nil {
			return nil, err
		}
		doc.BackendToken = sealed
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar estado local: %w", err)
	}

	state.Version = CurrentVersion
	state.UpdatedAt = doc.UpdatedAt
	return data, nil
}

func (r *StateRepository) decode(data []byte) (*LocalState, error) {
	var probe versionProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch {
	case probe.Version > CurrentVersion:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, probe.Version)
	case probe.Version < CurrentVersion:
		var legacy legacyDocument
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, err
		}
		return migrateLegacy(legacy), nil
	}

	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	state := &LocalState{
		Version:      CurrentVersion,
		Status:       doc.Status,
		Identity:     doc.Identity,
		Profile:      doc.Profile,
		BusinessInfo: doc.BusinessInfo,
		Hierarchy:    doc.Hierarchy,
		Selection:    selection.FromMap(doc.Selection.Accounts),
		UpdatedAt:    doc.UpdatedAt,
	}
	if !state.Status.IsValid() {
		state.Status = domain.StatusUnauthenticated
	}

	// Segredo que não abre é tratado como ausente
	if raw, err := r.sealer.Open(doc.Credential); err == nil && len(raw) > 0 {
		var cred domain.Credential
		if err := json.Unmarshal(raw, &cred); err == nil && !cred.IsZero() {
			state.Credential = &cred
		}
	}
	if raw, err := r.sealer.Open(doc.BackendToken); err == nil {
		state.BackendToken = string(raw)
	}

	// Sem credencial não existe sessão conectada
	if state.Credential.IsZero() && state.Status.HasCredential() {
		state.Status = domain.StatusUnauthenticated
	}
	// Um fluxo de consentimento não sobrevive a um reinício
	if state.Status == domain.StatusAuthenticating {
		state.Status = domain.StatusUnauthenticated
	}
	// Uma busca interrompida volta ao último estado estável
	if state.Status == domain.StatusFetchingHierarchy {
		if state.Hierarchy.IsEmpty() {
			state.Status = domain.StatusAuthenticated
		} else {
			state.Status = domain.StatusHierarchyReady
		}
	}

	return state, nil
}
