// Package cli реализует инструмент командной строки scriptdeck.
//
// # Обзор
//
// CLI — клиентская утилита для консоли скриптов. Все запросы идут через
// internal/client; сам пакет отвечает только за флаги, разбор аргументов
// и вывод.
//
// # Ключевые компоненты
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (go-pretty) — по умолчанию, с рамками только на терминале
//   - JSON — с флагом --json, выводится поле data ответа как есть
//
// Данные выводятся в stdout, сообщения (Success/Error) в stderr.
// Это позволяет использовать pipe: scriptdeck script list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - script: list, show, create, update, delete, versions, version, rollback, run, favorite
//   - execution: list, show, delete, logs, cancel, files, file-url, preview
//   - schedule: list, show, create, update, delete, toggle, run, next
//   - file: list, upload, download-url, preview, delete, mkdir, update
//   - env, category, tag, variable: CRUD
//   - workflow, workflow-execution, template: workflow и их выполнения
//
// Каждая группа создаётся через фабричную функцию (NewScriptCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
//
// Cron-выражения расписаний проверяются локально до запроса к API.
package cli
