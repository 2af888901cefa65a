package utils

// scoredIndex pairs a score with its position in the input slice.
type scoredIndex struct {
	val   float64
	index int
}

// TopKFinder selects the indices of the k largest values of a score
// slice using a reusable min-heap, avoiding a full sort when k is small
// relative to the catalog.
type TopKFinder struct {
	minHeap []scoredIndex
	indices []int
}

// NewTopKFinder preallocates for the largest k that will be requested.
func NewTopKFinder(maxK int) *TopKFinder {
	return &TopKFinder{
		minHeap: make([]scoredIndex, 0, maxK),
		indices: make([]int, 0, maxK),
	}
}

// FindTopK returns the indices of the k largest elements of scores, in
// unspecified order. Call SortIndices afterwards for descending order.
// The returned slice is owned by the finder and valid until the next call.
func (f *TopKFinder) FindTopK(scores []float64, k int) []int {
	if k <= 0 || len(scores) == 0 {
		return nil
	}
	if k > len(scores) {
		k = len(scores)
	}

	f.minHeap = f.minHeap[:0]
	for i := 0; i < k; i++ {
		f.minHeap = append(f.minHeap, scoredIndex{scores[i], i})
	}
	for i := k/2 - 1; i >= 0; i-- {
		f.siftDown(i, k-1)
	}

	for i := k; i < len(scores); i++ {
		if scores[i] > f.minHeap[0].val {
			f.minHeap[0] = scoredIndex{scores[i], i}
			f.siftDown(0, k-1)
		}
	}

	f.indices = f.indices[:0]
	for i := 0; i < k; i++ {
		f.indices = append(f.indices, f.minHeap[i].index)
	}
	return f.indices
}

// SortIndices reorders the last FindTopK result in place so indices run
// from highest to lowest score.
func (f *TopKFinder) SortIndices(scores []float64) {
	// insertion sort, k stays small
	for i := 1; i < len(f.indices); i++ {
		for j := i; j > 0 && scores[f.indices[j]] > scores[f.indices[j-1]]; j-- {
			f.indices[j], f.indices[j-1] = f.indices[j-1], f.indices[j]
		}
	}
}

func (f *TopKFinder) siftDown(root, end int) {
	for {
		child := root*2 + 1
		if child > end {
			return
		}
		if child+1 <= end && f.minHeap[child].val > f.minHeap[child+1].val {
			child++
		}
		if f.minHeap[root].val <= f.minHeap[child].val {
			return
		}
		f.minHeap[root], f.minHeap[child] = f.minHeap[child], f.minHeap[root]
		root = child
	}
}
