package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionStatusCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     ConnectionStatus
		to       ConnectionStatus
		expected bool
	}{
		{name: "Início do consentimento", from: StatusUnauthenticated, to: StatusAuthenticating, expected: true},
		{name: "Consentimento cancelado", from: StatusAuthenticating, to: StatusUnauthenticated, expected: true},
		{name: "Consentimento concluído", from: StatusAuthenticating, to: StatusAuthenticated, expected: true},
		{name: "Busca iniciada", from: StatusAuthenticated, to: StatusFetchingHierarchy, expected: true},
		{name: "Busca concluída", from: StatusFetchingHierarchy, to: StatusHierarchyReady, expected: true},
		{name: "Busca com falha", from: StatusFetchingHierarchy, to: StatusError, expected: true},
		{name: "Nova busca após erro", from: StatusError, to: StatusFetchingHierarchy, expected: true},
		{name: "Sem credencial não busca", from: StatusUnauthenticated, to: StatusFetchingHierarchy, expected: false},
		{name: "Sem credencial não fica pronto", from: StatusUnauthenticated, to: StatusHierarchyReady, expected: false},
		{name: "Consentimento não pula a busca", from: StatusAuthenticating, to: StatusHierarchyReady, expected: false},
		{name: "Pronto não volta para autenticado", from: StatusHierarchyReady, to: StatusAuthenticated, expected: false},
		{name: "Status desconhecido", from: ConnectionStatus("x"), to: StatusAuthenticating, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransition(tt.to))
		})
	}
}

func TestConnectionStatusHasCredential(t *testing.T) {
	assert.False(t, StatusUnauthenticated.HasCredential())
	assert.False(t, StatusAuthenticating.HasCredential())
	assert.True(t, StatusHierarchyReady.HasCredential())
	assert.True(t, StatusError.HasCredential())
	assert.False(t, ConnectionStatus("x").IsValid())
}
