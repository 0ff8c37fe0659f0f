package internal

// DependencyLink is the node shared by an effect's dependency list and a
// Dep's subscriber list, so either side can unlink it in O(1).
type DependencyLink struct {
	dep *Dep
	sub *Effect

	prevDep *DependencyLink
	nextDep *DependencyLink

	prevSub *DependencyLink
	nextSub *DependencyLink
}
