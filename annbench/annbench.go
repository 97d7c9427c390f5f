package annbench

import (
	"errors"
	"fmt"
	"sort"

	cm "github.com/gasparian/lsh-index-go/common"
	"gonum.org/v1/hdf5"
)

var (
	// ErrNotMatrix is returned when the hdf5 dataset is not a 2d array
	ErrNotMatrix = errors.New("dataset is not a 2d array")
)

// PrecisionRecall returns ratio of relevant predictions over all predictions
// and over all true relevant items; both arrays MUST BE SORTED
func PrecisionRecall(prediction, groundTruth []int) (float64, float64) {
	valid := 0
	for _, val := range prediction {
		idx := sort.SearchInts(groundTruth, val)
		if idx < len(groundTruth) && groundTruth[idx] == val {
			valid++
		}
	}
	precision := 0.0
	if len(prediction) > 0 {
		precision = float64(valid) / float64(len(prediction))
	}
	recall := 0.0
	if len(groundTruth) > 0 {
		recall = float64(valid) / float64(len(groundTruth))
	}
	return precision, recall
}

// Rank sorts candidates by the cosine distance to the query and keeps maxNN closest ones.
// Candidates without a known vector or with a zero vector are skipped
func Rank(candidates []string, vectors map[string][]float64, query []float64, maxNN int) []cm.NeighborsRecord {
	queryVec := cm.NewVec(query)
	closest := make([]cm.NeighborsRecord, 0, len(candidates))
	for _, id := range candidates {
		vec, ok := vectors[id]
		if !ok || len(vec) != len(query) {
			continue
		}
		dist, ok := cm.CosineDist(cm.NewVec(vec), queryVec)
		if !ok {
			continue
		}
		closest = append(closest, cm.NeighborsRecord{
			ID:   id,
			Dist: dist,
		})
	}
	sort.SliceStable(closest, func(i, j int) bool {
		return closest[i].Dist < closest[j].Dist
	})
	if maxNN > 0 && len(closest) > maxNN {
		closest = closest[:maxNN]
	}
	return closest
}

// Objects inside the hdf5:
// train
// test
// distances
// neighbors

func getDatasetShape(dataset *hdf5.Dataset) (int, int, error) {
	dims, _, err := dataset.Space().SimpleExtentDims()
	if err != nil {
		return 0, 0, err
	}
	if len(dims) != 2 {
		return 0, 0, fmt.Errorf("%w: got %d dims", ErrNotMatrix, len(dims))
	}
	return int(dims[0]), int(dims[1]), nil
}

// GetVectorsFromHDF5 returns feature vectors stored in the hdf5 table as float32 matrix
func GetVectorsFromHDF5(table *hdf5.File, datasetName string) ([][]float64, error) {
	dataset, err := table.OpenDataset(datasetName)
	if err != nil {
		return nil, err
	}
	defer dataset.Close()

	rows, cols, err := getDatasetShape(dataset)
	if err != nil {
		return nil, err
	}
	flat := make([]float32, rows*cols)
	err = dataset.Read(&flat)
	if err != nil {
		return nil, err
	}
	vecs := make([][]float64, rows)
	for i := range vecs {
		vecs[i] = cm.ConvertTo64(flat[i*cols : (i+1)*cols])
	}
	return vecs, nil
}

// GetNeighborsFromHDF5 returns sorted ground truth neighbors indices
func GetNeighborsFromHDF5(table *hdf5.File, datasetName string) ([][]int, error) {
	dataset, err := table.OpenDataset(datasetName)
	if err != nil {
		return nil, err
	}
	defer dataset.Close()

	rows, cols, err := getDatasetShape(dataset)
	if err != nil {
		return nil, err
	}
	flat := make([]int32, rows*cols)
	err = dataset.Read(&flat)
	if err != nil {
		return nil, err
	}
	neighbors := make([][]int, rows)
	for i := range neighbors {
		arr := cm.ConvertToInt(flat[i*cols : (i+1)*cols])
		sort.Ints(arr)
		neighbors[i] = arr
	}
	return neighbors, nil
}
