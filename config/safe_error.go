package config

// SafeErrorMessage 根据运行模式决定返回给客户端的错误文本。
// release 模式下返回 fallback，避免向客户端泄露内部错误详情；
// debug 模式（或配置未初始化时）返回原始错误，方便开发调试。
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
