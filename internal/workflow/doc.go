// Package workflow — локальная проверка определений workflow.
//
// # Обзор
//
// Определение workflow — граф узлов (script, delay, condition) и рёбер
// source → target. Backend исполняет его в топологическом порядке, начиная
// с узлов без входящих рёбер; граф с циклом не имеет точек входа и молча
// не выполняется. Пакет находит такие ошибки до отправки определения.
//
// # Использование
//
//	def, err := workflow.Parse(data)
//	if err != nil {
//	    return err
//	}
//	g, err := workflow.BuildGraph(def)
//	if err != nil {
//	    return err // *ValidationError, errors.Is(err, workflow.ErrCyclicDependency)
//	}
//	for _, n := range g.Order {
//	    fmt.Println(n.ID)
//	}
package workflow
