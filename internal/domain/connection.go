package domain

// ConnectionStatus é o estado do fluxo de conexão com a plataforma externa
type ConnectionStatus string

const (
	StatusUnauthenticated   ConnectionStatus = "unauthenticated"
	StatusAuthenticating    ConnectionStatus = "authenticating"
	StatusAuthenticated     ConnectionStatus = "authenticated"
	StatusFetchingHierarchy ConnectionStatus = "fetching_hierarchy"
	StatusHierarchyReady    ConnectionStatus = "hierarchy_ready"
	StatusError             ConnectionStatus = "error"
)

var allowedTransitions = map[ConnectionStatus][]ConnectionStatus{
	StatusUnauthenticated:   {StatusAuthenticating},
	StatusAuthenticating:    {StatusAuthenticated, StatusUnauthenticated, StatusAuthenticating},
	StatusAuthenticated:     {StatusFetchingHierarchy, StatusAuthenticating, StatusUnauthenticated},
	StatusFetchingHierarchy: {StatusHierarchyReady, StatusError, StatusUnauthenticated},
	StatusHierarchyReady:    {StatusFetchingHierarchy, StatusAuthenticating, StatusUnauthenticated},
	StatusError:             {StatusFetchingHierarchy, StatusAuthenticating, StatusUnauthenticated},
}

// CanTransition informa se a transição de s para next é permitida
func (s ConnectionStatus) CanTransition(next ConnectionStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ConnectionStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// HasCredential informa se o estado pressupõe uma credencial válida em mãos
func (s ConnectionStatus) HasCredential() bool {
	switch s {
	case StatusAuthenticated, StatusFetchingHierarchy, StatusHierarchyReady, StatusError:
		return true
	}
	return false
}
