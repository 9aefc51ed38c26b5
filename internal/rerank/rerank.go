// Package rerank уточняет порядок кандидатов ANN-поиска кодированием
// k-взаимных соседей: предпочтение получают кандидаты, взаимно близкие
// друг к другу, а не только к запросу.
package rerank

import (
	"math"
	"sort"
)

const (
	defaultK1     = 20
	defaultK2     = 6
	defaultLambda = 0.3
)

// Params — параметры ре-ранжирования.
type Params struct {
	K1     int     // глубина k-reciprocal соседей
	K2     int     // глубина локального сглаживания (1 отключает)
	Lambda float64 // вес исходной косинусной дистанции в итоговой
}

func DefaultParams() Params {
	return Params{
		K1:     defaultK1,
		K2:     defaultK2,
		Lambda: defaultLambda,
	}
}

// Position — позиция кандидата галереи после ре-ранжирования.
type Position struct {
	Index         int     // индекс кандидата во входной галерее
	FinalDistance float64 // не убывает вдоль результата
}

// Rank возвращает индексы галереи в порядке возрастания итоговой дистанции.
// Вычисление чистое: вход не модифицируется, вызовы независимы.
func Rank(query []float32, gallery [][]float32, p Params) []Position {
	n := len(gallery)
	if n == 0 {
		return nil
	}

	k1, k2 := clampDepths(p.K1, p.K2, n)

	// Узел 0 — запрос, узлы 1..n — галерея.
	allNum := n + 1
	dist := buildDistanceMatrix(query, gallery)
	normalizeByColumnMax(dist)

	initialRank := make([][]int, allNum)
	for i := range dist {
		initialRank[i] = argsort(dist[i])
	}

	v := encode(dist, initialRank, k1)
	if k2 != 1 {
		v = smooth(v, initialRank, k2)
	}

	jaccard := jaccardRow(v, n)

	result := make([]Position, n)
	for g := 0; g < n; g++ {
		final := (1-p.Lambda)*jaccard[g] + p.Lambda*dist[0][g+1]
		result[g] = Position{Index: g, FinalDistance: final}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].FinalDistance < result[j].FinalDistance
	})

	return result
}

// clampDepths приводит глубины к размеру галереи: k1 не больше n-1, k2 не больше k1.
func clampDepths(k1, k2, n int) (int, int) {
	if k1 > n-1 {
		k1 = n - 1
	}
	if k1 < 1 {
		k1 = 1
	}
	if k2 > k1 {
		k2 = k1
	}
	if k2 < 1 {
		k2 = 1
	}
	return k1, k2
}

// buildDistanceMatrix строит симметричную матрицу попарных косинусных
// дистанций над {запрос} ∪ галерея. Диагональ нулевая по определению.
func buildDistanceMatrix(query []float32, gallery [][]float32) [][]float64 {
	allNum := len(gallery) + 1
	vectors := make([][]float32, allNum)
	vectors[0] = query
	copy(vectors[1:], gallery)

	dist := make([][]float64, allNum)
	for i := range dist {
		dist[i] = make([]float64, allNum)
	}
	for i := 0; i < allNum; i++ {
		for j := i + 1; j < allNum; j++ {
			d := cosineDistance(vectors[i], vectors[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	return dist
}

// normalizeByColumnMax нормализует каждый столбец его максимумом и транспонирует
// матрицу на месте. Для симметричного входа это эквивалентно делению строки i
// на максимум столбца i: асимметричная, стабилизированная по рангу дистанция,
// используемая только для построения окрестностей.
func normalizeByColumnMax(dist [][]float64) {
	colMax := make([]float64, len(dist))
	for i := range dist {
		for j := range dist {
			if dist[j][i] > colMax[i] {
				colMax[i] = dist[j][i]
			}
		}
	}

	for i := range dist {
		if colMax[i] == 0 {
			continue
		}
		for j := range dist[i] {
			dist[i][j] /= colMax[i]
		}
	}
}

// encode строит разреженные веса V: для каждого узла экспоненциальные веса
// по его расширенному k-reciprocal множеству, нормированные к единичной сумме.
func encode(dist [][]float64, initialRank [][]int, k1 int) [][]float64 {
	allNum := len(dist)
	halfK := int(math.Round(float64(k1) / 2))

	v := make([][]float64, allNum)
	for i := 0; i < allNum; i++ {
		v[i] = make([]float64, allNum)

		reciprocal := reciprocalSet(initialRank, i, k1)

		// Локальное расширение: множество соседа вливается, если уже
		// пересекается с исходным более чем на две трети своего размера.
		expanded := append([]int(nil), reciprocal...)
		for _, candidate := range reciprocal {
			candReciprocal := reciprocalSet(initialRank, candidate, halfK)
			if 3*intersectionSize(candReciprocal, reciprocal) > 2*len(candReciprocal) {
				expanded = append(expanded, candReciprocal...)
			}
		}
		expanded = dedupe(expanded)

		// Сумма весов ненулевая: собственный узел (дистанция 0) всегда в множестве.
		sum := 0.0
		for _, j := range expanded {
			w := math.Exp(-dist[i][j])
			v[i][j] = w
			sum += w
		}
		for _, j := range expanded {
			v[i][j] /= sum
		}
	}

	return v
}

// reciprocalSet возвращает k-reciprocal множество узла i: прямые top-(k+1)
// соседи, в чьих top-(k+1) соседях узел i присутствует сам.
func reciprocalSet(initialRank [][]int, i, k int) []int {
	depth := k + 1
	if depth > len(initialRank[i]) {
		depth = len(initialRank[i])
	}

	forward := initialRank[i][:depth]
	reciprocal := make([]int, 0, depth)
	for _, j := range forward {
		jDepth := depth
		if jDepth > len(initialRank[j]) {
			jDepth = len(initialRank[j])
		}
		for _, back := range initialRank[j][:jDepth] {
			if back == i {
				reciprocal = append(reciprocal, j)
				break
			}
		}
	}

	return reciprocal
}

// smooth заменяет кодировку каждого узла средней по его top-k2 исходным
// соседям (local query expansion), сглаживая точечный шум.
func smooth(v [][]float64, initialRank [][]int, k2 int) [][]float64 {
	allNum := len(v)
	smoothed := make([][]float64, allNum)
	for i := 0; i < allNum; i++ {
		smoothed[i] = make([]float64, allNum)
		neighbors := initialRank[i]
		if len(neighbors) > k2 {
			neighbors = neighbors[:k2]
		}
		for _, nb := range neighbors {
			for j, w := range v[nb] {
				smoothed[i][j] += w
			}
		}
		for j := range smoothed[i] {
			smoothed[i][j] /= float64(len(neighbors))
		}
	}

	return smoothed
}

// jaccardRow считает жаккардову дистанцию запроса до каждого столбца галереи
// по сумме поэлементных минимумов кодировок, ограниченной инвертированным
// индексом ненулевых столбцов запроса.
func jaccardRow(v [][]float64, n int) []float64 {
	allNum := len(v)

	jaccard := make([]float64, n)
	for g := 0; g < n; g++ {
		col := g + 1
		if v[0][col] == 0 {
			jaccard[g] = 1
			continue
		}

		minSum := 0.0
		for i := 0; i < allNum; i++ {
			if v[i][col] == 0 {
				continue
			}
			minSum += math.Min(v[0][col], v[i][col])
		}
		jaccard[g] = 1 - minSum/(2-minSum)
	}

	return jaccard
}

// cosineDistance возвращает 1 - косинусное сходство; для нулевых векторов 1.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}

	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// argsort возвращает индексы строки в порядке возрастания значений (стабильно).
func argsort(row []float64) []int {
	idx := make([]int, len(row))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return row[idx[a]] < row[idx[b]]
	})

	return idx
}

func intersectionSize(a, b []int) int {
	set := make(map[int]struct{}, len(a))
	for _, x := range a {
		set[x] = struct{}{}
	}

	count := 0
	for _, x := range b {
		if _, ok := set[x]; ok {
			count++
		}
	}

	return count
}

func dedupe(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	result := values[:0]
	for _, x := range values {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		result = append(result, x)
	}

	return result
}
