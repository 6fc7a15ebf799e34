package repository

// SequenceRepository define el puerto para contadores monotónicos con nombre.
// El incremento bloquea la fila del contador, de modo que dos transacciones
// concurrentes jamás obtienen el mismo valor (la segunda espera a la primera).
type SequenceRepository interface {
	// NextValue incrementa el contador y devuelve el valor resultante.
	// Devuelve ErrNotFound si el contador aún no existe.
	NextValue(name string) (int64, error)
	// Seed crea el contador con el valor dado y lo devuelve. Si otro proceso
	// lo creó primero, incrementa el existente (upsert, sin carrera).
	Seed(name string, value int64) (int64, error)
}
