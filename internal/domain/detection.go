package domain

// Detection — детекция предмета одежды на загруженном изображении.
// Записывается внешним vision-пайплайном, здесь только читается.
type Detection struct {
	ID         string
	SearchID   string
	Label      string
	Gender     string
	Confidence float64
	BBox       []float64
	Embedding  []float32
}
