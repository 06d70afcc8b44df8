package code

// Success codes.
var (
	Success = NewSuss(0, lang{en: "ok", zh_cn: "成功"})
)

// Common error codes.
var (
	Failed               = NewError(1, lang{en: "failed", zh_cn: "失败"})
	ErrorInvalidParams   = NewError(10001, lang{en: "invalid request parameters", zh_cn: "请求参数错误"})
	ErrorNotFoundAPI     = NewError(10002, lang{en: "api not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests = NewError(10003, lang{en: "too many requests", zh_cn: "请求过多"})
	ErrorRequestTimeout  = NewError(10004, lang{en: "request timeout", zh_cn: "请求超时"})
	ErrorServerInternal  = NewError(10005, lang{en: "internal server error", zh_cn: "服务内部错误"})
	ErrorDBQuery         = NewError(10006, lang{en: "database query error", zh_cn: "数据库查询错误"})
)

// Note graph error codes.
var (
	ErrorNoteNotFound = NewError(20001, lang{en: "note not found", zh_cn: "笔记不存在"})
	ErrorVaultScan    = NewError(20002, lang{en: "vault scan failed", zh_cn: "仓库扫描失败"})
	ErrorGraphRebuild = NewError(20003, lang{en: "graph rebuild failed", zh_cn: "链接图重建失败"})
)
