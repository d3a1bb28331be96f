// Package bot — бот "прогресс года" для Discord поверх dsclient.
// Бот:
//   - слушает сообщения каналов и лички;
//   - отвечает на одну команду !yp (префикс и слово настраиваются):
//     !yp, !yp ping, !yp help, на остальное — подсказка про help;
//   - игнорирует сообщения других ботов и всё без префикса;
//   - (опционально) раз в интервал шлёт прогресс в личку одному
//     пользователю, если процент изменился.
//
// Жизненный цикл:
//   - Создать бота через New(opts, logger).
//   - Передать клиента: UseClient(...).
//   - (Опционально) SetBroadcast(userID) и после Start() — StartBroadcast(every).
//   - Запустить Start() и остановить Stop().
//
// Пример:
//
//	b := bot.New(bot.DefaultOptions(), log.Default())
//	b.UseClient(client)
//
//	if err := b.Start(); err != nil { log.Fatal(err) }
//	defer b.Stop()
//	<-ctx.Done() // держим процесс
//
// Ошибки отправки ответа не ретраятся и пользователю не показываются,
// только пишутся в лог.
package bot
