package domain

// Candidate — кандидат из ANN-индекса: точка с полным вектором и полезной нагрузкой.
// Живёт только внутри одного запроса поиска.
type Candidate struct {
	ID        string
	Vector    []float32
	ProductID string
	ImageID   string
	AnnScore  float32 // нативный score индекса, только затравочный порядок
}

func NewCandidate(id string, vector []float32, productID, imageID string, annScore float32) *Candidate {
	return &Candidate{
		ID:        id,
		Vector:    vector,
		ProductID: productID,
		ImageID:   imageID,
		AnnScore:  annScore,
	}
}

// RankedResult — позиция кандидата после ре-ранжирования.
// FinalDistance не убывает с ростом Rank.
type RankedResult struct {
	Rank          int // с единицы
	CandidateID   string
	ProductID     string
	ImageID       string
	FinalDistance float64
	AnnScore      float32
}
