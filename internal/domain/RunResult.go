package domain

// Motivos de skip de uma execução por cliente
const (
	SkipReasonBaseline     = "baseline"
	SkipReasonNoChanges    = "no_changes"
	SkipReasonNotConnected = "not_connected"
)

// RunResult é o desfecho de uma execução do pipeline para um cliente.
// Uma falha de coleta aborta apenas o cliente em questão e aparece aqui
// como Error preenchido; os demais clientes do lote seguem normalmente.
type RunResult struct {
	ClientID      string  `json:"client_id"`
	DraftID       *string `json:"draft_id"`
	ChangeCount   int     `json:"change_count"`
	SkippedReason *string `json:"skipped_reason"`
	Error         *string `json:"error,omitempty"`
}

// Completed indica se a execução terminou gerando um draft
func (r RunResult) Completed() bool {
	return r.DraftID != nil && r.Error == nil
}
