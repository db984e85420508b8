package router

import (
	"time"

	"dentalis/internal/config"
	"dentalis/internal/handler"
	"dentalis/internal/infra"
	"dentalis/internal/middleware"
	"dentalis/internal/repository"
	"dentalis/internal/service"
	"dentalis/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	pacienteRepo := repository.NewPacienteRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	odontogramaRepo := repository.NewOdontogramaRepository(db)
	tratamientoRepo := repository.NewTratamientoRepository(db)
	cobroRepo := repository.NewCobroRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	catalogoSvc := service.NewCatalogoService(catalogoRepo)
	pacienteSvc := service.NewPacienteService(pacienteRepo, catalogoRepo)
	odontogramaSvc := service.NewOdontogramaService(odontogramaRepo, pacienteRepo)
	cajaSvc := service.NewCajaService(cajaRepo, cobroRepo, dispatcher, cfg.AdminEmail)
	cobroSvc := service.NewCobroService(cobroRepo, catalogoRepo, cajaSvc)
	tratamientoSvc := service.NewTratamientoService(tratamientoRepo, cobroRepo, pacienteRepo, catalogoRepo, odontogramaRepo)
	turnoSvc := service.NewTurnoService(turnoRepo, pacienteRepo, usuarioRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	pacientesH := handler.NewPacientesHandler(pacienteSvc, odontogramaSvc)
	catalogosH := handler.NewCatalogosHandler(catalogoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	cobrosH := handler.NewCobrosHandler(cobroSvc)
	tratamientosH := handler.NewTratamientosHandler(tratamientoSvc)
	turnosH := handler.NewTurnosHandler(turnoSvc)
	consultaH := handler.NewConsultaArancelesHandler(catalogoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyStaff := middleware.RequireRole("recepcionista", "odontologo", "administrador")
		frontDesk := middleware.RequireRole("recepcionista", "administrador")
		clinico := middleware.RequireRole("odontologo", "administrador")
		admin := middleware.RequireRole("administrador")

		// Tariff lookup — any staff, cached
		v1.GET("/aranceles/:codigo/consulta", anyStaff, consultaH.GetArancelPorCodigo)

		pacientes := v1.Group("/pacientes")
		{
			pacientes.POST("", frontDesk, pacientesH.Crear)
			pacientes.GET("", anyStaff, pacientesH.Listar)
			pacientes.GET("/:id", anyStaff, pacientesH.Obtener)
			pacientes.PUT("/:id", frontDesk, pacientesH.Actualizar)
			pacientes.DELETE("/:id", admin, pacientesH.Desactivar)
			pacientes.POST("/:id/historia", clinico, pacientesH.AgregarHistoria)
			pacientes.GET("/:id/historia", anyStaff, pacientesH.ListarHistoria)
			pacientes.GET("/:id/odontograma", anyStaff, pacientesH.ObtenerOdontograma)
			pacientes.PUT("/:id/odontograma", clinico, pacientesH.ActualizarCaraOdontograma)
			pacientes.GET("/:id/tratamientos", anyStaff, tratamientosH.ListarPorPaciente)
			pacientes.GET("/:id/cobros", anyStaff, cobrosH.ListarPorPaciente)
		}

		turnos := v1.Group("/turnos")
		{
			turnos.POST("", frontDesk, turnosH.Crear)
			turnos.PATCH("/:id/estado", anyStaff, turnosH.CambiarEstado)
			turnos.GET("/agenda/:odontologo_id", anyStaff, turnosH.Agenda)
		}

		v1.POST("/tratamientos", clinico, tratamientosH.Registrar)

		cobros := v1.Group("/cobros")
		{
			cobros.POST("/pagar", frontDesk, cobrosH.RegistrarPago)
			cobros.GET("/pendientes", frontDesk, cobrosH.ListarPendientes)
		}

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", frontDesk, cajaH.Abrir)
			caja.POST("/cerrar", frontDesk, cajaH.Cerrar)
			caja.POST("/movimientos", frontDesk, cajaH.RegistrarMovimiento)
			caja.GET("/:id/movimientos", frontDesk, cajaH.ListarMovimientos)
			caja.GET("/:id/reporte", frontDesk, cajaH.ObtenerReporte)
			caja.GET("/activa", frontDesk, cajaH.GetActiva)
			caja.GET("/historial", admin, cajaH.Historial)
		}

		// Catalogs — administrador writes, any staff reads
		v1.GET("/obras-sociales", anyStaff, catalogosH.ListarObrasSociales)
		v1.GET("/metodos-pago", anyStaff, catalogosH.ListarMetodosPago)
		v1.GET("/aranceles", anyStaff, catalogosH.ListarAranceles)

		obras := v1.Group("/obras-sociales", admin)
		{
			obras.POST("", catalogosH.CrearObraSocial)
			obras.PUT("/:id", catalogosH.ActualizarObraSocial)
			obras.DELETE("/:id", catalogosH.DesactivarObraSocial)
		}
		metodos := v1.Group("/metodos-pago", admin)
		{
			metodos.POST("", catalogosH.CrearMetodoPago)
			metodos.DELETE("/:id", catalogosH.DesactivarMetodoPago)
		}
		aranceles := v1.Group("/aranceles", admin)
		{
			aranceles.POST("", catalogosH.CrearArancel)
			aranceles.PUT("/:id", catalogosH.ActualizarArancel)
			aranceles.DELETE("/:id", catalogosH.DesactivarArancel)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
