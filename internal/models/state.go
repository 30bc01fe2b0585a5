package models

// Stage of the surah/ayah selection flow.
type Stage int

const (
	StageNone Stage = iota
	StageChoosingSurah
	StageAwaitingAyah
)
