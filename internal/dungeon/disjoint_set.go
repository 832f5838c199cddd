package dungeon

// DisjointSet система непересекающихся множеств над индексами 0..n-1
// со сжатием путей и объединением по рангу.
type DisjointSet struct {
	parent []int
	rank   []int
	count  int
}

// NewDisjointSet создаёт n одиночных множеств
func NewDisjointSet(n int) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
		count:  n,
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

// Find возвращает корень множества элемента
func (ds *DisjointSet) Find(i int) int {
	for ds.parent[i] != i {
		ds.parent[i] = ds.parent[ds.parent[i]]
		i = ds.parent[i]
	}
	return i
}

// Union объединяет множества a и b. Возвращает false, если они уже совпадали.
func (ds *DisjointSet) Union(a, b int) bool {
	ra, rb := ds.Find(a), ds.Find(b)
	if ra == rb {
		return false
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}
	ds.count--
	return true
}

// Count текущее число множеств
func (ds *DisjointSet) Count() int {
	return ds.count
}

// Groups возвращает множества в порядке их наименьшего элемента;
// элементы внутри группы идут по возрастанию.
func (ds *DisjointSet) Groups() [][]int {
	slot := make(map[int]int, ds.count)
	groups := make([][]int, 0, ds.count)
	for i := range ds.parent {
		root := ds.Find(i)
		g, ok := slot[root]
		if !ok {
			g = len(groups)
			slot[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
