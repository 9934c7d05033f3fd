package report

// Field names as written by the collection agent. The agent labels every
// key in Russian; these constants are the wire contract and must match the
// uploaded documents byte for byte.
const (
	FieldUsername  = "Имя пользователя"
	FieldScanTime  = "Время сканирования"
	FieldOSVersion = "Версия Windows"

	FieldDriversLoaded  = "Загруженные драйверы"
	FieldDriversFolder  = "Файлы папки драйверов"
	FieldDriverServices = "Службы драйверов"
	FieldProcesses      = "Процессы"
	FieldModules        = "Модули"
	FieldProcessFiles   = "Файлы папки процесса"
	FieldBrowserHistory = "История браузеров"

	FieldSnapshot   = "Снимок файловой системы"
	FieldDownloads  = "Файлы из Загрузок"
	FieldDesktop    = "Файлы рабочего стола"
	FieldAppData    = "Файлы из AppData"
	FieldRecycleBin = "Удаленные файлы (Корзина)"

	FieldArchiveContents = "Содержание архива"
	FieldArchiveName     = "Имя в архиве"
	FieldName            = "Имя"
	FieldPath            = "Путь"
	FieldIsFolder        = "Это папка"
	FieldNested          = "Вложенное"
	FieldSize            = "size"
	FieldMD5             = "MD5"
	FieldPID             = "PID"

	FieldServiceName       = "Имя службы"
	FieldServiceDisplay    = "Отображаемое имя"
	FieldServiceState      = "Состояние"
	FieldServiceBinaryPath = "Путь к файлу"
)
