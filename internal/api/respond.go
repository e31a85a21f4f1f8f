package api

import (
	"encoding/json"
	"net/http"
)

// User-facing messages kept in the clinic frontend's language.
const (
	msgAllFieldsRequired  = "Todos os campos são obrigatórios"
	msgInvalidCredentials = "Credenciais de login inválidas"
	msgInvalidUserType    = "Tipo de usuário inválido"
	msgEmailTaken         = "Este email já está cadastrado. Use outro email ou faça login."
	msgNoProfessional     = "Nenhum profissional disponível para esta especialidade"
	msgSignupSuccess      = "Conta criada com sucesso! Verifique seu email para confirmar o cadastro."
	msgProfileUpdated     = "Perfil atualizado com sucesso!"
	msgLogoutFailed       = "Erro ao fazer logout"
	msgPasswordTooShort   = "A senha deve ter pelo menos 6 caracteres"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Details: details,
	})
}
