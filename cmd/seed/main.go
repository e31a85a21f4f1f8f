package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agendavida/clinic-agenda/internal/auth"
	"github.com/agendavida/clinic-agenda/internal/db"
)

var specialties = []string{
	"Cardiologia",
	"Dermatologia",
	"Clínica Geral",
	"Ortopedia",
	"Endocrinologia",
	"Neurologia",
	"Pediatria",
	"Psiquiatria",
	"Oftalmologia",
	"Otorrinolaringologia",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	// Every seeded account shares one password so the hash is computed
	// only once.
	passwordHash, err := auth.HashPassword("senha123")
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	adminID, err := seedUsers(context.Background(), pool, passwordHash, 40)
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	profIDs, err := seedProfessionals(context.Background(), pool, adminID, 25)
	if err != nil {
		log.Fatalf("seed professionals: %v", err)
	}
	if err := seedConsultas(context.Background(), pool, profIDs, 120); err != nil {
		log.Fatalf("seed consultas: %v", err)
	}

	log.Println("seed complete")
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, passwordHash string, count int) (uuid.UUID, error) {
	log.Printf("seeding %d users", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback(ctx)

	adminID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, user_type, created_at)
		VALUES ($1, 'Administrador', 'admin@agendavida.dev', $2, 'admin', now())
		ON CONFLICT (email) DO NOTHING
	`, adminID, passwordHash)
	if err != nil {
		return uuid.Nil, err
	}

	for i := 0; i < count; i++ {
		userType := "cliente"
		if gofakeit.Number(0, 4) == 0 {
			userType = "funcionario"
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, password_hash, user_type, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, now(), $6)
			ON CONFLICT (email) DO NOTHING
		`, uuid.New(), gofakeit.Name(), gofakeit.Email(), passwordHash, userType, adminID)
		if err != nil {
			return uuid.Nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, err
	}

	log.Println("users seeded")
	return adminID, nil
}

func seedProfessionals(ctx context.Context, pool *pgxpool.Pool, adminID uuid.UUID, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d professionals", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	specialtyIDs := make(map[string]uuid.UUID, len(specialties))
	for _, name := range specialties {
		var id uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO especialidades (id, nome, created_at)
			VALUES ($1, $2, now())
			ON CONFLICT (nome) DO UPDATE SET nome = EXCLUDED.nome
			RETURNING id
		`, uuid.New(), name).Scan(&id)
		if err != nil {
			return nil, err
		}
		specialtyIDs[name] = id
	}

	var profIDs []uuid.UUID
	for i := 0; i < count; i++ {
		id := uuid.New()
		spec := specialties[gofakeit.Number(0, len(specialties)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO profissionais (id, nome, email, telefone, especialidades, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, now(), $6)
		`, id, "Dr(a). "+gofakeit.Name(), gofakeit.Email(), gofakeit.Phone(), []string{spec}, adminID)
		if err != nil {
			return nil, err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO profissionais_especialidades (profissional_id, especialidade_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, id, specialtyIDs[spec])
		if err != nil {
			return nil, err
		}

		profIDs = append(profIDs, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("professionals seeded")
	return profIDs, nil
}

func seedConsultas(ctx context.Context, pool *pgxpool.Pool, profIDs []uuid.UUID, count int) error {
	log.Printf("seeding %d consultas", count)

	if len(profIDs) == 0 {
		log.Println("no professionals, skipping consultas")
		return nil
	}

	statuses := []string{"pendente", "pendente", "aprovada", "rejeitada"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		profID := profIDs[gofakeit.Number(0, len(profIDs)-1)]

		var spec string
		err := tx.QueryRow(ctx, `
			SELECT especialidades[1] FROM profissionais WHERE id = $1
		`, profID).Scan(&spec)
		if err != nil {
			return err
		}

		when := time.Now().AddDate(0, 0, gofakeit.Number(1, 60)).Truncate(time.Hour)

		_, err = tx.Exec(ctx, `
			INSERT INTO consultas (id, paciente_nome, paciente_email, data, descricao, especialidade, profissional_id, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		`, uuid.New(), gofakeit.Name(), gofakeit.Email(), when,
			gofakeit.Sentence(8), spec, profID, statuses[gofakeit.Number(0, len(statuses)-1)])
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("consultas seeded")
	return nil
}
