package booking

// ===============================
// Persistence Receipt
// ===============================

type Via string

const (
	ViaRemote   Via = "remote"
	ViaFallback Via = "fallback"
)

// Receipt é o resultado de uma persistência bem-sucedida.
// ID remoto é numérico; o fallback gera um identificador local.
type Receipt struct {
	ID  string `json:"id"`
	Via Via    `json:"via"`
}
