package client

import "context"

// --- Schedules ---

// GetSchedules возвращает все расписания.
func (c *Client) GetSchedules(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpGetSchedules, nil, nil)
}

// GetSchedule возвращает расписание по ID.
func (c *Client) GetSchedule(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetSchedule, nil, nil, itoa(id))
}

// CreateSchedule создаёт расписание.
func (c *Client) CreateSchedule(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpCreateSchedule, nil, data)
}

// UpdateSchedule обновляет расписание.
func (c *Client) UpdateSchedule(ctx context.Context, id int, data any) (*Response, error) {
	return c.call(ctx, OpUpdateSchedule, nil, data, itoa(id))
}

// DeleteSchedule удаляет расписание.
func (c *Client) DeleteSchedule(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpDeleteSchedule, nil, nil, itoa(id))
}

// ToggleSchedule включает или выключает расписание. Запрос без тела.
func (c *Client) ToggleSchedule(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpToggleSchedule, nil, nil, itoa(id))
}

// RunScheduleNow запускает расписание немедленно. Запрос без тела.
func (c *Client) RunScheduleNow(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpRunScheduleNow, nil, nil, itoa(id))
}
