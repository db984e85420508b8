package service

import (
	"context"
	"testing"

	"dentalis/internal/config"
	"dentalis/internal/dto"
	"dentalis/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func newAuthFixture() (*fakeUsuarioRepo, AuthService) {
	repo := newFakeUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    168,
	}
	return repo, NewAuthService(repo, cfg)
}

func crearRecepcionista(t *testing.T, svc AuthService) *dto.UsuarioResponse {
	t.Helper()
	user, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "recepcion1",
		Password: "secreta123",
		Nombre:   "Laura Díaz",
		Rol:      model.RolRecepcionista,
	})
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	_, svc := newAuthFixture()
	crearRecepcionista(t, svc)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "recepcion1",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RolRecepcionista, resp.User.Rol)

	// The access token carries user_id/rol claims signed with HS256.
	token, err := jwt.Parse(resp.AccessToken, func(_ *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID, claims["user_id"])
	assert.Equal(t, model.RolRecepcionista, claims["rol"])
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	_, svc := newAuthFixture()
	crearRecepcionista(t, svc)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "recepcion1",
		Password: "otra-cosa",
	})
	assert.ErrorContains(t, err, "credenciales invalidas")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo, svc := newAuthFixture()
	user := crearRecepcionista(t, svc)

	for _, u := range repo.usuarios {
		if u.ID.String() == user.ID {
			u.Activo = false
		}
	}

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "recepcion1",
		Password: "secreta123",
	})
	assert.ErrorContains(t, err, "credenciales invalidas")
}

func TestRefresh(t *testing.T) {
	_, svc := newAuthFixture()
	crearRecepcionista(t, svc)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "recepcion1",
		Password: "secreta123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorContains(t, err, "refresh token invalido")
}

func TestCrearUsuario_OdontologoSinMatricula(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "dr.nuevo",
		Password: "secreta123",
		Nombre:   "Dr. Nuevo",
		Rol:      model.RolOdontologo,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "matrícula")
}

func TestCrearUsuario_NoExponePassword(t *testing.T) {
	repo, svc := newAuthFixture()
	user := crearRecepcionista(t, svc)

	for _, u := range repo.usuarios {
		if u.ID.String() == user.ID {
			assert.NotEqual(t, "secreta123", u.PasswordHash)
			assert.NotEmpty(t, u.PasswordHash)
		}
	}
}

func TestActualizarUsuario_QuitarMatriculaAOdontologo(t *testing.T) {
	_, svc := newAuthFixture()
	mat := "MN 99"
	user, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username:  "dra.lopez",
		Password:  "secreta123",
		Nombre:    "Dra. López",
		Rol:       model.RolOdontologo,
		Matricula: &mat,
	})
	require.NoError(t, err)

	// Switching a recepcionista to odontologo without matricula must fail;
	// here: role change away leaves matricula optional.
	actualizado, err := svc.ActualizarUsuario(context.Background(), mustUUID(t, user.ID), dto.ActualizarUsuarioRequest{
		Rol: model.RolAdministrador,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RolAdministrador, actualizado.Rol)
}

func TestDesactivarYReactivarUsuario(t *testing.T) {
	_, svc := newAuthFixture()
	user := crearRecepcionista(t, svc)
	id := mustUUID(t, user.ID)

	require.NoError(t, svc.DesactivarUsuario(context.Background(), id))

	activos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := svc.ListarUsuarios(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
	assert.False(t, todos[0].Activo)

	require.NoError(t, svc.ReactivarUsuario(context.Background(), id))
	activos, err = svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)
}
