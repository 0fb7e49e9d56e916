package ecs

// entityStore tracks entity generations and free ids.
type entityStore struct {
	nextID entityID
	gen    []generation
	alive  []bool
	free   []entityID
	count  int
}

func (s *entityStore) create() Entity {
	if s == nil {
		return 0
	}
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.nextID++
		id = s.nextID
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
	}
	s.alive[id-1] = true
	s.count++
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gen[idx]++
	s.alive[idx] = false
	s.free = append(s.free, e.id())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || !e.Valid() || int(e.id()) > len(s.gen) {
		return false
	}
	idx := e.id() - 1
	return s.alive[idx] && s.gen[idx] == e.generation()
}
