package dungeon

// ActorFactory граница со слоем отображения: создаёт визуальный объект для клетки
type ActorFactory interface {
	CreateActor(x, z int, t TileType) ActorHandle
}

// ActorFactoryFunc адаптер обычной функции к ActorFactory
type ActorFactoryFunc func(x, z int, t TileType) ActorHandle

func (f ActorFactoryFunc) CreateActor(x, z int, t TileType) ActorHandle {
	return f(x, z, t)
}

// AttachActors сохраняет на каждой непустой клетке объект из фабрики.
// Пустые клетки получают nil. Возвращает число созданных объектов.
func AttachActors(grid *Grid, factory ActorFactory) int {
	n := 0
	grid.ForEach(func(t *Tile) {
		if t.Type == TileEmpty {
			t.Actor = nil
			return
		}
		t.Actor = factory.CreateActor(t.X, t.Z, t.Type)
		n++
	})
	return n
}
