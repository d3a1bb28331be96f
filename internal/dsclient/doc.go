// Package dsclient — тонкая обёртка над discordgo для бота.
// Подключение к gateway, heartbeat, реконнект и rate limit целиком делает
// discordgo; пакет только приводит сессию к тому же виду, что и остальные
// клиенты бота: колбэки-поля и пара методов отправки.
//
// События (колбэки поля структуры):
//   - OnConnecting, OnConnected, OnMessage, OnDisconnected, OnError.
//
// Отправка:
//   - SendText(ctx, channelID, text) — сообщение в канал;
//   - SendDirect(ctx, userID, text) — личное сообщение (DM-канал создаётся
//     при каждой отправке, Discord возвращает уже существующий).
//
// Пример:
//
//	c, err := dsclient.New(token, log.Default())
//	if err != nil { log.Fatal(err) }
//	c.OnMessage = func(m *discordgo.MessageCreate) { fmt.Println(m.Content) }
//	if err := c.Connect(ctx); err != nil { log.Fatal(err) }
//	defer c.Disconnect()
//
//	_ = c.SendText(ctx, channelID, "Hello!")
package dsclient
