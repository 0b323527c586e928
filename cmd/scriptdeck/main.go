// scriptdeck — инструмент командной строки консоли скриптов:
// скрипты, выполнения, расписания, файлы и workflow через HTTP API.
//
// Использование:
//
//	scriptdeck [--config FILE] [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	script              Управление скриптами и их запуск
//	execution           Выполнения, логи и артефакты
//	schedule            Расписания
//	file                Файловое хранилище
//	env                 Окружения выполнения
//	category, tag       Классификация скриптов
//	workflow            Workflow
//	workflow-execution  Выполнения workflow
//	template            Шаблоны workflow
//	variable            Глобальные переменные
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/scriptdeck/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCmd(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}
