package domain

// PercentNotApplicable é o marcador exibido quando não existe percentual
// (valor anterior igual a zero ou métrica agregada)
const PercentNotApplicable = "n/a"

// ChangeRecord representa uma variação significativa entre dois snapshots,
// já formatada para exibição. Registros são efêmeros: existem apenas dentro
// de uma execução e do corpo do draft gerado.
type ChangeRecord struct {
	Label    string `json:"label"`
	Current  string `json:"current"`
	Previous string `json:"previous"`
	Delta    string `json:"delta"`
	Percent  string `json:"percent"`
}

// DiffResult é o resultado da comparação entre o snapshot atual e o anterior.
// A ordem de Changes é fixa e não deve ser reordenada pelos consumidores.
type DiffResult struct {
	IsFirstRun bool           `json:"is_first_run"`
	Changes    []ChangeRecord `json:"changes"`
}
