// Package config загружает конфигурацию CLI и консоли.
//
// Источники (по возрастанию приоритета):
//  1. значения по умолчанию (New)
//  2. YAML-файл: путь из аргумента Load или SCRIPTDECK_CONFIG
//  3. переменные окружения с префиксом SCRIPTDECK_
//
// Флаги командной строки применяются поверх результата вызывающим кодом.
package config

import (
	"time"
)

// EnvPrefix — префикс переменных окружения.
const EnvPrefix = "SCRIPTDECK_"

// EnvConfigPath — переменная с путём к YAML-файлу.
const EnvConfigPath = EnvPrefix + "CONFIG"

// Config — конфигурация процесса.
type Config struct {
	// APIURL — базовый URL API backend, к которому обращается клиент.
	APIURL string `koanf:"api_url"`

	// BackendURL — адрес backend, на который консоль проксирует /api.
	BackendURL string `koanf:"backend_url"`

	// ListenAddr — адрес HTTP-сервера консоли.
	ListenAddr string `koanf:"listen_addr"`

	// Timeout — таймаут одного запроса к API.
	Timeout time.Duration `koanf:"timeout"`

	// Headers — заголовки, добавляемые к каждому запросу (например, Authorization).
	Headers map[string]string `koanf:"headers"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// New возвращает конфигурацию со значениями по умолчанию.
func New() *Config {
	return &Config{
		APIURL:     "http://localhost:5000/api",
		BackendURL: "http://localhost:5000",
		ListenAddr: ":3000",
		Timeout:    30 * time.Second,
		Headers:    map[string]string{},
		LogLevel:   "info",
		LogFormat:  "json",
	}
}
