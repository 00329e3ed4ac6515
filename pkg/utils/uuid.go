package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateRowID gera identificadores mais longos para linhas importadas
func GenerateRowID() (string, error) {
	return gonanoid.Generate(characters, 16)
}
