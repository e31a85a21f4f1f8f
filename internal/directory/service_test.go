package directory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendavida/clinic-agenda/internal/auth"
	"github.com/agendavida/clinic-agenda/internal/user"
)

type fakeProfRepo struct {
	profs        map[uuid.UUID]Professional
	specialties  map[string]Specialty
	associations map[string]struct{}
}

func newFakeProfRepo() *fakeProfRepo {
	return &fakeProfRepo{
		profs:        make(map[uuid.UUID]Professional),
		specialties:  make(map[string]Specialty),
		associations: make(map[string]struct{}),
	}
}

func (r *fakeProfRepo) List(ctx context.Context) ([]Professional, error) {
	var out []Professional
	for _, p := range r.profs {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProfRepo) ListBySpecialty(ctx context.Context, specialty string) ([]Professional, error) {
	var out []Professional
	for _, p := range r.profs {
		if p.HasSpecialty(specialty) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProfRepo) GetByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	p, ok := r.profs[id]
	if !ok {
		return nil, ErrProfessionalNotFound
	}
	return &p, nil
}

func (r *fakeProfRepo) Upsert(ctx context.Context, p Professional) (*Professional, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
		p.CreatedAt = time.Now()
	} else if _, ok := r.profs[p.ID]; !ok {
		return nil, ErrProfessionalNotFound
	}
	r.profs[p.ID] = p
	return &p, nil
}

func (r *fakeProfRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.profs[id]; !ok {
		return ErrProfessionalNotFound
	}
	delete(r.profs, id)
	return nil
}

func (r *fakeProfRepo) UpsertSpecialty(ctx context.Context, name string) (*Specialty, error) {
	if existing, ok := r.specialties[name]; ok {
		return &existing, nil
	}
	sp := Specialty{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	r.specialties[name] = sp
	return &sp, nil
}

func (r *fakeProfRepo) UpsertAssociation(ctx context.Context, professionalID, specialtyID uuid.UUID) error {
	r.associations[fmt.Sprintf("%s/%s", professionalID, specialtyID)] = struct{}{}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, user.ErrEmailTaken
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return &u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) (*user.User, error) {
	existing, ok := r.users[u.ID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	existing.Name = u.Name
	existing.Email = u.Email
	existing.UserType = u.UserType
	r.users[u.ID] = existing
	return &existing, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestService() (*Service, *fakeProfRepo, *fakeUserRepo) {
	profs := newFakeProfRepo()
	users := newFakeUserRepo()
	return NewService(profs, users, zerolog.Nop()), profs, users
}

func TestSaveProfessionalRequiresAllFields(t *testing.T) {
	svc, profs, _ := newTestService()

	_, err := svc.SaveProfessional(context.Background(), uuid.New(), SaveProfessionalInput{
		Name:  "Dra. Souza",
		Email: "souza@clinica.dev",
		// phone and specialty missing
	})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, profs.profs)
	assert.Empty(t, profs.specialties)
}

func TestSaveProfessionalCreatesSpecialtyAndAssociation(t *testing.T) {
	svc, profs, _ := newTestService()
	adminID := uuid.New()

	saved, err := svc.SaveProfessional(context.Background(), adminID, SaveProfessionalInput{
		Name:      "Dra. Souza",
		Email:     "souza@clinica.dev",
		Phone:     "11 99999-0001",
		Specialty: "Cardiologia",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Cardiologia"}, saved.Specialties)
	require.NotNil(t, saved.CreatedBy)
	assert.Equal(t, adminID, *saved.CreatedBy)

	sp, ok := profs.specialties["Cardiologia"]
	require.True(t, ok)
	_, linked := profs.associations[fmt.Sprintf("%s/%s", saved.ID, sp.ID)]
	assert.True(t, linked)
}

func TestSaveProfessionalReusesExistingSpecialty(t *testing.T) {
	svc, profs, _ := newTestService()

	first, err := profs.UpsertSpecialty(context.Background(), "Cardiologia")
	require.NoError(t, err)

	_, err = svc.SaveProfessional(context.Background(), uuid.New(), SaveProfessionalInput{
		Name:      "Dr. Lima",
		Email:     "lima@clinica.dev",
		Phone:     "11 99999-0002",
		Specialty: "Cardiologia",
	})
	require.NoError(t, err)

	require.Len(t, profs.specialties, 1)
	assert.Equal(t, first.ID, profs.specialties["Cardiologia"].ID)
}

func TestSaveProfessionalUpdateMergesSpecialties(t *testing.T) {
	svc, _, _ := newTestService()
	adminID := uuid.New()

	created, err := svc.SaveProfessional(context.Background(), adminID, SaveProfessionalInput{
		Name:      "Dra. Souza",
		Email:     "souza@clinica.dev",
		Phone:     "11 99999-0001",
		Specialty: "Cardiologia",
	})
	require.NoError(t, err)

	updated, err := svc.SaveProfessional(context.Background(), adminID, SaveProfessionalInput{
		ID:        &created.ID,
		Name:      "Dra. Souza",
		Email:     "souza@clinica.dev",
		Phone:     "11 99999-0001",
		Specialty: "Dermatologia",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.ElementsMatch(t, []string{"Cardiologia", "Dermatologia"}, updated.Specialties)
}

func TestProfessionalHasSpecialty(t *testing.T) {
	svc, _, _ := newTestService()

	saved, err := svc.SaveProfessional(context.Background(), uuid.New(), SaveProfessionalInput{
		Name:      "Dra. Souza",
		Email:     "souza@clinica.dev",
		Phone:     "11 99999-0001",
		Specialty: "Cardiologia",
	})
	require.NoError(t, err)

	ok, err := svc.ProfessionalHasSpecialty(context.Background(), saved.ID, "Cardiologia")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ProfessionalHasSpecialty(context.Background(), saved.ID, "Dermatologia")
	require.NoError(t, err)
	assert.False(t, ok)

	// An unknown professional is not an error, only a negative answer.
	ok, err = svc.ProfessionalHasSpecialty(context.Background(), uuid.New(), "Cardiologia")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSpecialtyNamesDeduplicates(t *testing.T) {
	svc, _, _ := newTestService()

	for i, spec := range []string{"Cardiologia", "Cardiologia", "Dermatologia"} {
		_, err := svc.SaveProfessional(context.Background(), uuid.New(), SaveProfessionalInput{
			Name:      fmt.Sprintf("Dr(a). %d", i),
			Email:     fmt.Sprintf("prof%d@clinica.dev", i),
			Phone:     "11 99999-0000",
			Specialty: spec,
		})
		require.NoError(t, err)
	}

	names, err := svc.SpecialtyNames(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Cardiologia", "Dermatologia"}, names)
}

func TestCreateUserHashesPasswordAndRecordsAdmin(t *testing.T) {
	svc, _, users := newTestService()
	adminID := uuid.New()

	created, err := svc.CreateUser(context.Background(), adminID, UserInput{
		Name:     "João",
		Email:    "joao@x.com",
		Password: "senha123",
		UserType: user.TypeFuncionario,
	})
	require.NoError(t, err)

	stored := users.users[created.ID]
	assert.NotEqual(t, "senha123", stored.PasswordHash)
	assert.True(t, auth.CheckPasswordHash("senha123", stored.PasswordHash))
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, adminID, *stored.CreatedBy)
	assert.Equal(t, user.TypeFuncionario, stored.UserType)
}

func TestCreateUserDefaultsToCliente(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.CreateUser(context.Background(), uuid.New(), UserInput{
		Name:     "João",
		Email:    "joao@x.com",
		Password: "senha123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.TypeCliente, created.UserType)
}

func TestCreateUserRejectsUnknownType(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateUser(context.Background(), uuid.New(), UserInput{
		Name:     "João",
		Email:    "joao@x.com",
		Password: "senha123",
		UserType: user.UserType("gerente"),
	})
	assert.Error(t, err)
}

func TestUpdateUserNeverTouchesPassword(t *testing.T) {
	svc, _, users := newTestService()

	created, err := svc.CreateUser(context.Background(), uuid.New(), UserInput{
		Name:     "João",
		Email:    "joao@x.com",
		Password: "senha123",
		UserType: user.TypeCliente,
	})
	require.NoError(t, err)
	originalHash := users.users[created.ID].PasswordHash

	updated, err := svc.UpdateUser(context.Background(), created.ID, UserInput{
		Name:     "João Pedro",
		Email:    "joao.pedro@x.com",
		Password: "nova-senha",
		UserType: user.TypeAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, "João Pedro", updated.Name)
	assert.Equal(t, user.TypeAdmin, updated.UserType)
	assert.Equal(t, originalHash, users.users[created.ID].PasswordHash)
}

func TestDeleteUser(t *testing.T) {
	svc, _, users := newTestService()

	created, err := svc.CreateUser(context.Background(), uuid.New(), UserInput{
		Name:     "João",
		Email:    "joao@x.com",
		Password: "senha123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID))
	assert.Empty(t, users.users)

	err = svc.DeleteUser(context.Background(), created.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
