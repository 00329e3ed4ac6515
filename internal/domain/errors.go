package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration indica parâmetros rejeitados antes de qualquer cálculo
	ErrInvalidConfiguration = errors.New("configuração inválida")
	// ErrCapacityExceeded indica que o resultado estimado ou real passou do limite
	ErrCapacityExceeded = errors.New("capacidade excedida")
	// ErrBaseNotLoaded indica que a base de inserções ainda não foi carregada
	ErrBaseNotLoaded = errors.New("base de dados não carregada")
)

// Dimensões nomeadas em erros de capacidade
const (
	DimensionRows    = "rows"
	DimensionColumns = "columns"
	DimensionCells   = "cells"
)

// ConfigError descreve um parâmetro inválido
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidConfiguration.Error(), e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfiguration.Error(), e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewConfigError cria um erro de configuração para o campo informado
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// CapacityError descreve um resultado grande demais, nomeando a dimensão responsável
type CapacityError struct {
	Dimension string
	Estimate  int
	Limit     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s estimado %d acima do limite %d, refine os filtros",
		ErrCapacityExceeded.Error(), e.Dimension, e.Estimate, e.Limit)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// IsConfigError verifica se o erro é de configuração
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsCapacityError verifica se o erro é de capacidade
func IsCapacityError(err error) bool {
	return errors.Is(err, ErrCapacityExceeded)
}
